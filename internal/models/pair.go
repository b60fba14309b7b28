package models

// Pair is one line of a pair file.
type Pair struct {
	Repo   string `json:"repo"`
	First  int    `json:"first"`
	Second int    `json:"second"`
	Line   int    `json:"line,omitempty"`
}

func (p Pair) FirstRef() PRRef {
	return PRRef{Repo: p.Repo, Number: p.First}
}

func (p Pair) SecondRef() PRRef {
	return PRRef{Repo: p.Repo, Number: p.Second}
}

// PairReport is the outcome for one pair. Exactly one of Result and Err is set.
type PairReport struct {
	Pair   Pair              `json:"pair"`
	Result *ComparisonResult `json:"result,omitempty"`
	Err    error             `json:"-"`
	Error  string            `json:"error,omitempty"`
}

// Evaluation is the classified outcome of a labelled run.
type Evaluation struct {
	Threshold     float64      `json:"threshold"`
	Duplicates    []PairReport `json:"duplicates"`
	NonDuplicates []PairReport `json:"non_duplicates"`
	Failed        []PairReport `json:"failed"`
	Confusion     Confusion    `json:"confusion"`
}

// Confusion counts classifications against the labels of the input files.
type Confusion struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
}

// Precision returns 0 when nothing was classified as a duplicate.
func (c Confusion) Precision() float64 {
	d := c.TruePositives + c.FalsePositives
	if d == 0 {
		return 0
	}
	return float64(c.TruePositives) / float64(d)
}

// Recall returns 0 when no labelled duplicate was evaluated.
func (c Confusion) Recall() float64 {
	d := c.TruePositives + c.FalseNegatives
	if d == 0 {
		return 0
	}
	return float64(c.TruePositives) / float64(d)
}
