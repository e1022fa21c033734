package registry

const bldrgstBase = "http://apis.data.go.kr/1613000/BldRgstService_v2/"

// ledgerOrder fixes the registration order of ledger types
var ledgerOrder = []string{"기본개요", "총괄표제부", "표제부", "층별개요", "부속지번", "전유공용면적", "오수정화시설", "주택가격", "전유부", "지역지구구역"}

var ledgerEndpoints = map[string]endpoint{
	"기본개요": {
		slug:    "basis",
		url:     bldrgstBase + "getBrBasisOulnInfo",
		columns: []string{"bjdongCd", "bldNm", "block", "bun", "bylotCnt", "crtnDay", "guyukCd", "guyukCdNm", "ji", "jiguCd", "jiguCdNm", "jiyukCd", "jiyukCdNm", "lot", "mgmBldrgstPk", "mgmUpBldrgstPk", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newPlatPlc", "platGbCd", "platPlc", "regstrGbCd", "regstrGbCdNm", "regstrKindCd", "regstrKindCdNm", "rnum", "sigunguCd", "splotNm"},
	},
	"총괄표제부": {
		slug:    "recap_title",
		url:     bldrgstBase + "getBrRecapTitleInfo",
		columns: []string{"archArea", "atchBldArea", "atchBldCnt", "bcRat", "bjdongCd", "bldNm", "block", "bun", "bylotCnt", "crtnDay", "engrEpi", "engrGrade", "engrRat", "etcPurps", "fmlyCnt", "gnBldCert", "gnBldGrade", "hhldCnt", "hoCnt", "indrAutoArea", "indrAutoUtcnt", "indrMechArea", "indrMechUtcnt", "itgBldCert", "itgBldGrade", "ji", "lot", "mainBldCnt", "mainPurpsCd", "mainPurpsCdNm", "mgmBldrgstPk", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newOldRegstrGbCd", "newOldRegstrGbCdNm", "newPlatPlc", "oudrAutoArea", "oudrAutoUtcnt", "oudrMechArea", "oudrMechUtcnt", "platArea", "platGbCd", "platPlc", "pmsDay", "pmsnoGbCd", "pmsnoGbCdNm", "pmsnoKikCd", "pmsnoKikCdNm", "pmsnoYear", "regstrGbCd", "regstrGbCdNm", "regstrKindCd", "regstrKindCdNm", "rnum", "sigunguCd", "splotNm", "stcnsDay", "totArea", "totPkngCnt", "useAprDay", "vlRat", "vlRatEstmTotArea"},
	},
	"표제부": {
		slug:    "title",
		url:     bldrgstBase + "getBrTitleInfo",
		columns: []string{"archArea", "atchBldArea", "atchBldCnt", "bcRat", "bjdongCd", "bldNm", "block", "bun", "bylotCnt", "crtnDay", "dongNm", "emgenUseElvtCnt", "engrEpi", "engrGrade", "engrRat", "etcPurps", "etcRoof", "etcStrct", "fmlyCnt", "gnBldCert", "gnBldGrade", "grndFlrCnt", "heit", "hhldCnt", "hoCnt", "indrAutoArea", "indrAutoUtcnt", "indrMechArea", "indrMechUtcnt", "itgBldCert", "itgBldGrade", "ji", "lot", "mainAtchGbCd", "mainAtchGbCdNm", "mainPurpsCd", "mainPurpsCdNm", "mgmBldrgstPk", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newPlatPlc", "oudrAutoArea", "oudrAutoUtcnt", "oudrMechArea", "oudrMechUtcnt", "platArea", "platGbCd", "platPlc", "pmsDay", "pmsnoGbCd", "pmsnoGbCdNm", "pmsnoKikCd", "pmsnoKikCdNm", "pmsnoYear", "regstrGbCd", "regstrGbCdNm", "regstrKindCd", "regstrKindCdNm", "rideUseElvtCnt", "rnum", "roofCd", "roofCdNm", "rserthqkAblty", "rserthqkDsgnApplyYn", "sigunguCd", "splotNm", "stcnsDay", "strctCd", "strctCdNm", "totArea", "totDongTotArea", "ugrndFlrCnt", "useAprDay", "vlRat", "vlRatEstmTotArea"},
	},
	"층별개요": {
		slug:    "floor",
		url:     bldrgstBase + "getBrFlrOulnInfo",
		columns: []string{"area", "areaExctYn", "bjdongCd", "bldNm", "block", "bun", "crtnDay", "dongNm", "etcPurps", "etcStrct", "flrGbCd", "flrGbCdNm", "flrNo", "flrNoNm", "ji", "lot", "mainAtchGbCd", "mainAtchGbCdNm", "mainPurpsCd", "mainPurpsCdNm", "mgmBldrgstPk", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newPlatPlc", "platGbCd", "platPlc", "rnum", "sigunguCd", "splotNm", "strctCd", "strctCdNm"},
	},
	"부속지번": {
		slug:    "attached_lot",
		url:     bldrgstBase + "getBrAtchJibunInfo",
		columns: []string{"atchBjdongCd", "atchBlock", "atchBun", "atchEtcJibunNm", "atchJi", "atchLot", "atchPlatGbCd", "atchRegstrGbCd", "atchRegstrGbCdNm", "atchSigunguCd", "atchSplotNm", "bjdongCd", "bldNm", "block", "bun", "crtnDay", "ji", "lot", "mgmBldrgstPk", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newPlatPlc", "platGbCd", "platPlc", "regstrGbCd", "regstrGbCdNm", "regstrKindCd", "regstrKindCdNm", "rnum", "sigunguCd", "splotNm"},
	},
	"전유공용면적": {
		slug:    "expos_pubuse_area",
		url:     bldrgstBase + "getBrExposPubuseAreaInfo",
		columns: []string{"area", "bjdongCd", "bldNm", "block", "bun", "crtnDay", "dongNm", "etcPurps", "etcStrct", "exposPubuseGbCd", "exposPubuseGbCdNm", "flrGbCd", "flrGbCdNm", "flrNo", "flrNoNm", "hoNm", "ji", "lot", "mainAtchGbCd", "mainAtchGbCdNm", "mainPurpsCd", "mainPurpsCdNm", "mgmBldrgstPk", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newPlatPlc", "platGbCd", "platPlc", "regstrGbCd", "regstrGbCdNm", "regstrKindCd", "regstrKindCdNm", "rnum", "sigunguCd", "splotNm", "strctCd", "strctCdNm"},
	},
	"오수정화시설": {
		slug:    "wclf",
		url:     bldrgstBase + "getBrWclfInfo",
		columns: []string{"bjdongCd", "bldNm", "block", "bun", "capaLube", "capaPsper", "crtnDay", "etcMode", "ji", "lot", "mgmBldrgstPk", "modeCd", "modeCdNm", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newPlatPlc", "platGbCd", "platPlc", "regstrGbCd", "regstrGbCdNm", "regstrKindCd", "regstrKindCdNm", "rnum", "sigunguCd", "splotNm", "unitGbCd", "unitGbCdNm"},
	},
	"주택가격": {
		slug:    "hsprc",
		url:     bldrgstBase + "getBrHsprcInfo",
		columns: []string{"bjdongCd", "bldNm", "block", "bun", "bylotCnt", "crtnDay", "hsprc", "ji", "lot", "mgmBldrgstPk", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newPlatPlc", "platGbCd", "platPlc", "regstrGbCd", "regstrGbCdNm", "regstrKindCd", "regstrKindCdNm", "rnum", "sigunguCd", "splotNm"},
	},
	"전유부": {
		slug:    "expos",
		url:     bldrgstBase + "getBrExposInfo",
		columns: []string{"bjdongCd", "bldNm", "block", "bun", "crtnDay", "dongNm", "flrGbCd", "flrGbCdNm", "flrNo", "hoNm", "ji", "lot", "mgmBldrgstPk", "naBjdongCd", "naMainBun", "naRoadCd", "naSubBun", "naUgrndCd", "newPlatPlc", "platGbCd", "platPlc", "regstrGbCd", "regstrGbCdNm", "regstrKindCd", "regstrKindCdNm", "rnum", "sigunguCd", "splotNm"},
	},
	"지역지구구역": {
		slug:    "jijigu",
		url:     bldrgstBase + "getBrJijiguInfo",
		columns: []string{"bjdongCd", "block", "bun", "crtnDay", "etcJijigu", "ji", "jijiguCd", "jijiguCdNm", "jijiguGbCd", "jijiguGbCdNm", "lot", "mgmBldrgstPk", "newPlatPlc", "platGbCd", "platPlc", "reprYn", "rnum", "sigunguCd", "splotNm"},
	},
}
