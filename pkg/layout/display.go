package layout

import "fmt"

// DisplaySet carries the resolved dimensions formatted for the dimension
// readout: one decimal place with a metre suffix.
type DisplaySet struct {
	Width       string `json:"width"`
	Depth       string `json:"depth"`
	Height      string `json:"height"`
	FloorHeight string `json:"floor_height"`
}

// Display formats dimensions for the readout collaborator.
func Display(d Dimensions) DisplaySet {
	return DisplaySet{
		Width:       formatMetres(d.Width),
		Depth:       formatMetres(d.Depth),
		Height:      formatMetres(d.TotalHeight),
		FloorHeight: formatMetres(d.FloorHeight),
	}
}

func formatMetres(v float64) string {
	return fmt.Sprintf("%.1f m", v)
}
