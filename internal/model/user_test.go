package model

import "testing"

func TestUser_LevelName(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "초보 라이더"},
		{10, "초보 라이더"},
		{11, "중급 라이더"},
		{50, "중급 라이더"},
		{51, "고급 라이더"},
		{100, "고급 라이더"},
		{101, "스피드 레이서"},
		{500, "스피드 레이서"},
	}

	for _, tt := range tests {
		u := &User{Level: tt.level}
		if got := u.LevelName(); got != tt.want {
			t.Errorf("LevelName() with level %d = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestUser_Badges(t *testing.T) {
	tests := []struct {
		name       string
		numEvents  int
		numParties int
		want       map[string]bool
	}{
		{
			name: "fresh account has no badges",
			want: map[string]bool{
				"첫 미션":        false,
				"첫 파티":        false,
				"당신은 지쿠인싸":    false,
				"당신은 프로미션수행러": false,
			},
		},
		{
			name:       "first mission and first party at exactly one",
			numEvents:  1,
			numParties: 1,
			want: map[string]bool{
				"첫 미션":        true,
				"첫 파티":        true,
				"당신은 지쿠인싸":    false,
				"당신은 프로미션수행러": false,
			},
		},
		{
			name:       "power badges at exactly ten",
			numEvents:  10,
			numParties: 10,
			want: map[string]bool{
				"첫 미션":        true,
				"첫 파티":        true,
				"당신은 지쿠인싸":    true,
				"당신은 프로미션수행러": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{NumEvents: tt.numEvents, NumParties: tt.numParties}
			got := u.Badges()
			for badge, want := range tt.want {
				if got[badge] != want {
					t.Errorf("badge %q = %v, want %v", badge, got[badge], want)
				}
			}
		})
	}
}
