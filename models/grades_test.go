package models

import (
	"math"
	"testing"
)

func TestGradeSheetAverage(t *testing.T) {
	tests := []struct {
		name  string
		sheet GradeSheet
		want  float64
	}{
		{name: "empty", sheet: nil, want: 0},
		{name: "zero coefficients", sheet: GradeSheet{{Value: 12, Coef: 0}}, want: 0},
		{
			name: "weighted",
			sheet: GradeSheet{
				{Subject: "Algorithmique", Value: 16, Coef: 4},
				{Subject: "Anglais", Value: 10, Coef: 2},
			},
			want: 14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sheet.Average()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("expected average %.2f, got %.2f", tt.want, got)
			}
		})
	}
}
