package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowString(t *testing.T) {
	date := DateParts{Year: "2018", Month: "10", Day: "05"}

	tests := []struct {
		name string
		row  Row
		want string
	}{
		{
			name: "padded",
			row:  Row{File: "a.txt", Location: "loc1", Date: date, Values: "1,2", Times: "10,20", Count: 2, MaxTimes: 4},
			want: `"a.txt", "loc1", 2018, 10, 05, 1,2, N/A, N/A, 10,20, N/A, N/A`,
		},
		{
			name: "full width",
			row:  Row{File: "b.txt", Location: "x y", Date: date, Values: "1,2", Times: "3,4", Count: 2, MaxTimes: 2},
			want: `"b.txt", "x y", 2018, 10, 05, 1,2, 3,4`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.String())
		})
	}
}

func TestRowCells(t *testing.T) {
	row := Row{
		File:     "a.txt",
		Location: "loc1",
		Date:     DateParts{Year: "2018", Month: "10", Day: "05"},
		Values:   "1, 2",
		Times:    "10,20",
		Count:    2,
		MaxTimes: 3,
	}
	assert.Equal(t, []string{
		"a.txt", "loc1", "2018", "10", "05",
		"1", "2", "N/A",
		"10", "20", "N/A",
	}, row.Cells())
}
