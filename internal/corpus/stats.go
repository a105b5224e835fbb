package corpus

import "math"

// LengthStats summarizes chapter text lengths across the corpus.
type LengthStats struct {
	Count  int
	Mean   float64
	Stddev float64
	Min    int
	Max    int
}

func Lengths(rows []Row) LengthStats {
	if len(rows) == 0 {
		return LengthStats{}
	}

	s := LengthStats{
		Count: len(rows),
		Min:   len(rows[0].Text),
		Max:   len(rows[0].Text),
	}

	sum := 0
	for _, r := range rows {
		n := len(r.Text)
		sum += n
		if n < s.Min {
			s.Min = n
		}
		if n > s.Max {
			s.Max = n
		}
	}
	s.Mean = float64(sum) / float64(len(rows))

	var sq float64
	for _, r := range rows {
		d := float64(len(r.Text)) - s.Mean
		sq += d * d
	}
	s.Stddev = math.Sqrt(sq / float64(len(rows)))

	return s
}

// Outliers returns rows whose text length deviates from the mean by
// more than sigma standard deviations. These are the extractions worth
// eyeballing: truncated chapters, merged chapters, leftover front matter.
func Outliers(rows []Row, sigma float64) []Row {
	s := Lengths(rows)
	if s.Count == 0 || s.Stddev == 0 {
		return nil
	}

	var out []Row
	for _, r := range rows {
		if math.Abs(float64(len(r.Text))-s.Mean) > sigma*s.Stddev {
			out = append(out, r)
		}
	}

	return out
}
