package report

// SyntheticPortCalls stands in for port-call counts, which voyages do not
// record yet. The value is derived from the voyage id only, lies in 2..6 and
// is the same on every call. Rows built with it are flagged
// PortCallsSynthetic and exports label the column as estimated.
func SyntheticPortCalls(voyageID int64) int {
	x := (voyageID*9301 + 49297) % 233280
	return int(2 + x%5)
}
