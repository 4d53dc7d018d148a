package menu

import (
	"sort"
	"strings"
)

// RowConfig holds tuning knobs for row clustering.
type RowConfig struct {
	// MinYTolerance is the floor for the vertical-closeness tolerance, in pixels.
	MinYTolerance float64

	// YToleranceFactor scales the median fragment height into the tolerance.
	YToleranceFactor float64

	// MinOverlapRatio is the vertical-overlap ratio at which a fragment
	// joins an existing row outright.
	MinOverlapRatio float64

	// MinColumnGap is the floor for the intra-row column-break gap, in pixels.
	MinColumnGap float64

	// ColumnGapFactor scales the median horizontal step into the gap threshold.
	ColumnGapFactor float64
}

// DefaultRowConfig returns the tuning used in production.
func DefaultRowConfig() RowConfig {
	return RowConfig{
		MinYTolerance:    6,
		YToleranceFactor: 0.45,
		MinOverlapRatio:  0.35,
		MinColumnGap:     40,
		ColumnGapFactor:  2.5,
	}
}

// columnSeparator marks an intra-row column break in assembled row text.
// The classifier treats it as separator punctuation, so price columns stay
// distinguishable without merging into the name text.
const columnSeparator = "|"

// RowClusterer groups unordered OCR fragments into reading-order rows.
type RowClusterer struct {
	config RowConfig
}

// NewRowClusterer creates a clusterer with default configuration.
func NewRowClusterer() *RowClusterer {
	return &RowClusterer{config: DefaultRowConfig()}
}

// NewRowClustererWithConfig creates a clusterer with custom configuration.
func NewRowClustererWithConfig(config RowConfig) *RowClusterer {
	return &RowClusterer{config: config}
}

// rowCluster is a maximal group of fragments judged to lie on one visual
// row. It exists only during clustering.
type rowCluster struct {
	bbox    Box
	members []Fragment
}

func (rc *rowCluster) add(f Fragment) {
	rc.bbox = rc.bbox.Union(*f.Box)
	rc.members = append(rc.members, f)
}

// Rows converts fragments into ordered, cleaned row strings. Fragments
// without geometry cannot be placed more precisely than their input order:
// they become standalone rows after the clustered ones. When no fragment
// carries geometry at all, input order is preserved as-is.
func (c *RowClusterer) Rows(fragments []Fragment) []string {
	var positioned, freeform []Fragment
	for _, f := range fragments {
		if f.Box != nil {
			positioned = append(positioned, f)
		} else {
			freeform = append(freeform, f)
		}
	}

	var rows []string
	for _, cluster := range c.cluster(positioned) {
		rows = append(rows, c.assembleRowText(cluster))
	}
	for _, f := range freeform {
		rows = append(rows, f.Text)
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		row = CleanRow(row)
		if row != "" {
			out = append(out, row)
		}
	}
	return out
}

// cluster groups positioned fragments into rows, top to bottom.
func (c *RowClusterer) cluster(fragments []Fragment) []*rowCluster {
	if len(fragments) == 0 {
		return nil
	}

	yTol := c.config.MinYTolerance
	if t := medianHeight(fragments) * c.config.YToleranceFactor; t > yTol {
		yTol = t
	}

	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Box.MidY() != sorted[j].Box.MidY() {
			return sorted[i].Box.MidY() < sorted[j].Box.MidY()
		}
		return sorted[i].Box.X1 < sorted[j].Box.X1
	})

	var clusters []*rowCluster
	for _, frag := range sorted {
		if target := c.bestCluster(clusters, frag, yTol); target != nil {
			target.add(frag)
		} else {
			clusters = append(clusters, &rowCluster{bbox: *frag.Box, members: []Fragment{frag}})
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].bbox.MidY() < clusters[j].bbox.MidY()
	})
	for _, cl := range clusters {
		members := cl.members
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Box.X1 < members[j].Box.X1
		})
	}
	return clusters
}

// bestCluster picks the row a fragment belongs to. Overlap-ratio wins;
// ties break on higher overlap, then smaller midpoint distance. A fragment
// that overlaps nothing can still join the row whose midpoint is within
// yTol of its own.
func (c *RowClusterer) bestCluster(clusters []*rowCluster, frag Fragment, yTol float64) *rowCluster {
	var best *rowCluster
	bestOverlap := 0.0
	bestDist := 0.0

	for _, cl := range clusters {
		overlap := frag.Box.VerticalOverlap(cl.bbox)
		if overlap < c.config.MinOverlapRatio {
			continue
		}
		dist := absFloat(frag.Box.MidY() - cl.bbox.MidY())
		if best == nil || overlap > bestOverlap || (overlap == bestOverlap && dist < bestDist) {
			best, bestOverlap, bestDist = cl, overlap, dist
		}
	}
	if best != nil {
		return best
	}

	for _, cl := range clusters {
		dist := absFloat(frag.Box.MidY() - cl.bbox.MidY())
		if dist > yTol {
			continue
		}
		if best == nil || dist < bestDist {
			best, bestDist = cl, dist
		}
	}
	return best
}

// assembleRowText joins a row's fragments left to right, inserting a column
// separator where the horizontal gap is far larger than the row's typical
// fragment step.
func (c *RowClusterer) assembleRowText(cluster *rowCluster) string {
	members := cluster.members
	if len(members) == 1 {
		return members[0].Text
	}

	steps := make([]float64, 0, len(members)-1)
	for i := 1; i < len(members); i++ {
		steps = append(steps, members[i].Box.X1-members[i-1].Box.X1)
	}
	gapThreshold := c.config.MinColumnGap
	if t := median(steps) * c.config.ColumnGapFactor; t > gapThreshold {
		gapThreshold = t
	}

	var sb strings.Builder
	sb.WriteString(members[0].Text)
	for i := 1; i < len(members); i++ {
		if members[i].Box.X1-members[i-1].Box.X1 > gapThreshold {
			sb.WriteString(" " + columnSeparator + " ")
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(members[i].Text)
	}
	return sb.String()
}

func medianHeight(fragments []Fragment) float64 {
	heights := make([]float64, 0, len(fragments))
	for _, f := range fragments {
		heights = append(heights, f.Box.Height())
	}
	return median(heights)
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
