package game

import (
	"fmt"
	"strings"
)

//go:generate go tool mockgen -destination=./mocks/dataset_sink_mock.go -package=mocks . DatasetSink

// Dataset names for the two outcome shapes
const (
	StaticDataset = "dataset"
	MovingDataset = "movingdataset"
)

// Record is one outcome row: comma-joined features followed by the label
type Record struct {
	Set    string
	Values []string
}

// Line renders the row as written to a dataset file (without newline)
func (r Record) Line() string {
	return strings.Join(r.Values, ",")
}

// DatasetSink receives outcome rows. Implementations decide where they go.
type DatasetSink interface {
	Append(r Record) error
}

// GuidedRecord builds the static-target row f1,f2,f3,f4,label.
// f1 and f2 carry one decimal, the sign factors and the label are integers.
func GuidedRecord(g *Guidance, label int) Record {
	return Record{
		Set: StaticDataset,
		Values: []string{
			fmt.Sprintf("%.1f", g.F1),
			fmt.Sprintf("%.1f", g.F2),
			fmt.Sprintf("%d", int(g.F3)),
			fmt.Sprintf("%d", int(g.F4)),
			fmt.Sprintf("%d", label),
		},
	}
}

// InterceptRecord builds the moving-target row
// targetSpeed,projectileSpeed,targetY,direction,aimY
func InterceptRecord(ic *Intercept) Record {
	return Record{
		Set: MovingDataset,
		Values: []string{
			fmt.Sprintf("%d", int(ic.TargetSpeed)),
			fmt.Sprintf("%d", int(ic.Speed)),
			fmt.Sprintf("%d", int(ic.TargetY)),
			fmt.Sprintf("%d", ic.Direction),
			fmt.Sprintf("%d", int(ic.AimY)),
		},
	}
}
