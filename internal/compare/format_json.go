package compare

import (
	"errors"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// SchemaVersion is bumped whenever the JSON comparison document changes shape
const SchemaVersion = 1

// RankedResult is one row of the nest egg ranking
type RankedResult struct {
	Rank                    int             `json:"rank"`
	ScenarioName            string          `json:"scenarioName"`
	Kind                    ResultKind      `json:"kind"`
	ProjectedNestEgg        decimal.Decimal `json:"projectedNestEgg"`
	MonthlyRetirementIncome decimal.Decimal `json:"monthlyRetirementIncome"`
}

type comparisonDocument struct {
	SchemaVersion int `json:"schemaVersion"`
	*ComparisonSet
	Ranking []RankedResult `json:"ranking"`
}

// JSONFormatter formats comparison results as a versioned JSON document
// with the base plan, every alternative and a nest egg ranking.
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil || compSet.BaseResult == nil {
		return "", errors.New("comparison has no base result")
	}

	doc := comparisonDocument{
		SchemaVersion: SchemaVersion,
		ComparisonSet: compSet,
		Ranking:       RankByNestEgg(compSet),
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RankByNestEgg orders the base and alternative results by projected nest
// egg, largest first. Ties keep base-then-input order.
func RankByNestEgg(compSet *ComparisonSet) []RankedResult {
	results := make([]ComparisonResult, 0, len(compSet.AlternativeResults)+1)
	if compSet.BaseResult != nil {
		results = append(results, *compSet.BaseResult)
	}
	results = append(results, compSet.AlternativeResults...)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ProjectedNestEgg.GreaterThan(results[j].ProjectedNestEgg)
	})

	ranking := make([]RankedResult, len(results))
	for i, r := range results {
		ranking[i] = RankedResult{
			Rank:                    i + 1,
			ScenarioName:            r.ScenarioName,
			Kind:                    r.Kind,
			ProjectedNestEgg:        r.ProjectedNestEgg,
			MonthlyRetirementIncome: r.MonthlyRetirementIncome,
		}
	}
	return ranking
}
