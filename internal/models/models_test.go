package models

import "testing"

func TestTeamForNumber(t *testing.T) {
	tests := []struct {
		playerNumber int
		want         int
	}{
		{1, 1},
		{2, 2},
		{3, 1},
		{4, 2},
		{7, 1},
		{8, 2},
	}
	for _, tt := range tests {
		if got := TeamForNumber(tt.playerNumber); got != tt.want {
			t.Errorf("TeamForNumber(%d) = %d, want %d", tt.playerNumber, got, tt.want)
		}
	}
}
