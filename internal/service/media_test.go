package service

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestLoadPartyFrame_MissingFileFallsBackToTransparent(t *testing.T) {
	frame := loadPartyFrame("testdata/does-not-exist.png")
	if frame == nil {
		t.Fatal("fallback frame should not be nil")
	}

	// Compositing the fallback must leave the photo untouched.
	want := color.NRGBA{R: 200, G: 10, B: 10, A: 255}
	photo := imaging.New(4, 4, want)
	s := &MediaService{frame: frame}

	out := s.compositeFrame(photo)
	if got := color.NRGBAModel.Convert(out.At(2, 2)).(color.NRGBA); got != want {
		t.Errorf("pixel after composite = %v, want %v", got, want)
	}
}
