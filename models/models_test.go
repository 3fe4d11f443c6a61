package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraDisplayName(t *testing.T) {
	camera := Camera{Make: "Nikon", Model: "D750"}
	assert.Equal(t, "Nikon D750", camera.DisplayName())

	lensName := "Nikkor 50mm f/1.8"
	camera.DefaultLensName = &lensName
	assert.Equal(t, "Nikon D750 + Nikkor 50mm f/1.8", camera.DisplayName())
}

func TestLensDisplayName(t *testing.T) {
	fl := 50.0
	prime := Lens{Name: "Nikkor", MaxAperture: "f/1.8", FocalLength: &fl}
	assert.Equal(t, "Nikkor 50mm f/1.8", prime.DisplayName())
	assert.False(t, prime.IsZoom())

	minFL, maxFL := 28.0, 75.0
	zoom := Lens{Name: "Tamron", MaxAperture: "f/2.8", MinFocalLength: &minFL, MaxFocalLength: &maxFL}
	assert.Equal(t, "Tamron 28-75mm f/2.8", zoom.DisplayName())
	assert.True(t, zoom.IsZoom())

	bare := Lens{Name: "Mystery"}
	assert.Equal(t, "Mystery", bare.DisplayName())
}

func TestIsValidAperture(t *testing.T) {
	assert.True(t, IsValidAperture("f/2.8"))
	assert.True(t, IsValidAperture("f/16"))
	assert.False(t, IsValidAperture("f/2.9"))
	assert.False(t, IsValidAperture(""))
}
