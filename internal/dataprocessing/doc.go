// Package dataprocessing turns Energy Monitor measurement files into
// fixed-width report rows.
//
// # Input format
//
// A valid file starts with a header line carrying an integer code and a date:
//
//	# 7 2018-10-05
//
// The remainder is any mix of data lines and multiplier directives:
//
//	loc1; 1,2; 10,20
//	mult 2
//	loc2; 3,4,5; 30,40,50
//
// A data line holds a location, N comma-separated values and N times. A
// "mult k" directive scales the values (not the times) of the next data line
// only. A line containing ';' is never a directive.
//
// # Processing
//
// Each line is classified into a tagged Line (header, multiplier, data or
// blank). The pending multiplier is a small state machine (MultiplierState)
// consumed by the next data line. Rows are padded with "N/A" up to maxTimes
// values and times:
//
//	n, _ := dataprocessing.NewNormalizer(4)
//	res, err := n.Normalize(ctx, f, "a.txt")
//	for _, row := range res.Rows {
//	    fmt.Println(row)
//	}
//
// # Error Handling
//
// A file with an invalid header is not an error; it yields StatusInvalidHeader
// and no rows. A data line with more than maxTimes values, or a value that
// cannot be parsed while a multiplier is pending, fails the file with an
// *errors.AppError (codes TOO_MANY_VALUES and MALFORMED_NUMERIC).
package dataprocessing
