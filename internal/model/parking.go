package model

// ParkingSpot is one of the fixed bike parking lots around campus.
type ParkingSpot struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// ParkingSpots is the fixed table of designated parking lots. Order matters:
// nearest-spot lookup resolves distance ties to the first occurrence.
var ParkingSpots = []ParkingSpot{
	{"정문", 37.46573, 126.94814},
	{"행정관", 37.46634, 126.94977},
	{"자하연", 37.46033, 126.95220},
	{"중앙도서관", 37.45980, 126.95236},
	{"학생회관", 37.45931, 126.95057},
	{"경영대", 37.46519, 126.94769},
	{"법대", 37.46457, 126.94883},
	{"사회과학대", 37.46410, 126.95010},
	{"인문대", 37.46066, 126.95398},
	{"사범대", 37.46208, 126.95454},
	{"자연대", 37.45986, 126.95513},
	{"공대", 37.44968, 126.95248},
	{"제2공학관", 37.44856, 126.95199},
	{"농생대", 37.46085, 126.94881},
	{"생활대", 37.46217, 126.94960},
	{"미대", 37.46544, 126.95324},
	{"음대", 37.46459, 126.95372},
	{"수의대", 37.46790, 126.95405},
	{"약대", 37.46420, 126.95165},
	{"기숙사삼거리", 37.45380, 126.95721},
	{"관악사", 37.45292, 126.95843},
	{"버들골", 37.46624, 126.95605},
	{"대운동장", 37.46297, 126.94755},
	{"체육관", 37.46360, 126.94660},
	{"종합체육관", 37.46394, 126.94572},
	{"박물관", 37.46657, 126.95251},
	{"규장각", 37.46545, 126.95105},
	{"언어교육원", 37.46725, 126.95120},
	{"호암교수회관", 37.46815, 126.95518},
	{"연구공원", 37.44807, 126.95471},
	{"유전공학연구소", 37.45911, 126.95705},
	{"국제대학원", 37.45873, 126.95603},
	{"행정대학원", 37.46335, 126.95230},
	{"환경대학원", 37.46284, 126.95330},
	{"보건대학원", 37.46232, 126.95145},
	{"301동앞", 37.44991, 126.95216},
	{"302동앞", 37.44900, 126.95296},
	{"신공학관", 37.45015, 126.95447},
	{"낙성대입구", 37.46930, 126.95793},
}

// NearestParkingSpot returns the spot minimizing squared Euclidean distance
// to (lat, lng) over the fixed table. Ties keep the earliest entry.
func NearestParkingSpot(lat, lng float64) ParkingSpot {
	best := ParkingSpots[0]
	bestDist := squaredDistance(best.Lat, best.Lng, lat, lng)

	for _, spot := range ParkingSpots[1:] {
		if d := squaredDistance(spot.Lat, spot.Lng, lat, lng); d < bestDist {
			best = spot
			bestDist = d
		}
	}
	return best
}

func squaredDistance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}
