package registry

var ledgerIntegerColumns = []string{
	"hhldCnt", "fmlyCnt", "hoCnt", "mainBldCnt", "atchBldCnt", "bylotCnt", "totPkngCnt",
	"grndFlrCnt", "ugrndFlrCnt", "rideUseElvtCnt", "emgenUseElvtCnt",
	"indrAutoUtcnt", "indrMechUtcnt", "oudrAutoUtcnt", "oudrMechUtcnt",
	"flrNo", "hsprc",
}

var ledgerFloatColumns = []string{
	"archArea", "atchBldArea", "platArea", "totArea", "totDongTotArea", "vlRatEstmTotArea",
	"bcRat", "vlRat", "heit", "area", "engrRat",
	"indrAutoArea", "indrMechArea", "oudrAutoArea", "oudrMechArea", "capaLube",
}

var ledgerRequiredColumns = []string{"mgmBldrgstPk"}

var ledgerSpecs = buildLedgerSpecs()

func buildLedgerSpecs() []EndpointSpec {
	specs := make([]EndpointSpec, 0, len(ledgerOrder))
	for _, ledgerType := range ledgerOrder {
		e := ledgerEndpoints[ledgerType]
		labels := make(map[string]string, len(e.columns))
		for _, c := range e.columns {
			if label, ok := fieldLabels[c]; ok {
				labels[c] = label
			}
		}
		specs = append(specs, EndpointSpec{
			Family:          FamilyBuildingLedger,
			Category:        ledgerType,
			Slug:            e.slug,
			URL:             e.url,
			ExpectedColumns: e.columns,
			IntegerColumns:  subset(e.columns, ledgerIntegerColumns),
			FloatColumns:    subset(e.columns, ledgerFloatColumns),
			RequiredColumns: subset(e.columns, ledgerRequiredColumns),
			Labels:          labels,
		})
	}
	return specs
}

// Label returns the Korean header for a building ledger field code
func Label(code string) (string, bool) {
	label, ok := fieldLabels[code]
	return label, ok
}
