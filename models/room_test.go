package models_test

import (
	"testing"

	"aarogya/models"

	"github.com/stretchr/testify/assert"
)

func TestRoomSupports(t *testing.T) {
	tests := []struct {
		name      string
		therapies []string
		service   string
		want      bool
	}{
		{"exact match", []string{"Abhyang"}, "Abhyang", true},
		{"case-insensitive", []string{"abhyang"}, "Abhyang", true},
		{"room entry contains service name", []string{"Abhyang Massage"}, "Abhyang", true},
		{"service name contains room entry", []string{"Steam"}, "Steamed Herbal Wrap", true},
		{"wildcard", []string{models.RoomSupportsAll}, "Anything", true},
		{"no overlap", []string{"Shirodhara"}, "Abhyang", false},
		{"empty list", nil, "Abhyang", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := models.Room{ID: "r", SupportedTherapies: tt.therapies}
			assert.Equal(t, tt.want, room.Supports(tt.service))
		})
	}
}
