package registry

const rtmsBase = "http://openapi.molit.go.kr/OpenAPI_ToolInstallPackage/service/rest/RTMSOBJSvc/"
const rtmsBase8081 = "http://openapi.molit.go.kr:8081/OpenAPI_ToolInstallPackage/service/rest/RTMSOBJSvc/"

var propertySlugs = map[string]string{
	"아파트":   "apt",
	"오피스텔":  "offi",
	"단독다가구": "sh",
	"연립다세대": "rh",
	"상업업무용": "nrg",
	"토지":    "land",
	"분양입주권": "silv",
	"공장창고등": "indu",
}

var tradeSlugs = map[string]string{
	"매매":  "trade",
	"전월세": "rent",
}

// transactionEndpoints is keyed by property type, then trade type
var transactionEndpoints = map[string]map[string]endpoint{
	"아파트": {
		"매매": {
			url:     rtmsBase + "getRTMSDataSvcAptTradeDev",
			columns: []string{"지역코드", "도로명", "법정동", "지번", "아파트", "건축년도", "층", "전용면적", "년", "월", "일", "거래금액", "도로명건물본번호코드", "도로명건물부번호코드", "도로명시군구코드", "도로명일련번호코드", "도로명지상지하코드", "도로명코드", "법정동본번코드", "법정동부번코드", "법정동시군구코드", "법정동읍면동코드", "법정동지번코드", "일련번호", "거래유형", "중개사소재지", "해제사유발생일", "해제여부"},
		},
		"전월세": {
			url:     rtmsBase8081 + "getRTMSDataSvcAptRent",
			columns: []string{"지역코드", "법정동", "지번", "아파트", "건축년도", "층", "전용면적", "년", "월", "일", "보증금액", "월세금액", "계약구분", "계약기간", "갱신요구권사용", "종전계약보증금", "종전계약월세"},
		},
	},
	"오피스텔": {
		"매매": {
			url:     rtmsBase + "getRTMSDataSvcOffiTrade",
			columns: []string{"지역코드", "시군구", "법정동", "지번", "단지", "건축년도", "층", "전용면적", "년", "월", "일", "거래금액", "거래유형", "중개사소재지", "해제사유발생일", "해제여부"},
		},
		"전월세": {
			url:     rtmsBase + "getRTMSDataSvcOffiRent",
			columns: []string{"지역코드", "시군구", "법정동", "지번", "단지", "건축년도", "층", "전용면적", "년", "월", "일", "보증금", "월세", "계약구분", "계약기간", "갱신요구권사용", "종전계약보증금", "종전계약월세"},
		},
	},
	"단독다가구": {
		"매매": {
			url:     rtmsBase8081 + "getRTMSDataSvcSHTrade",
			columns: []string{"지역코드", "법정동", "지번", "주택유형", "건축년도", "대지면적", "연면적", "년", "월", "일", "거래금액", "거래유형", "중개사소재지", "해제사유발생일", "해제여부"},
		},
		"전월세": {
			url:     rtmsBase8081 + "getRTMSDataSvcSHRent",
			columns: []string{"지역코드", "법정동", "건축년도", "계약면적", "년", "월", "일", "보증금액", "월세금액", "계약구분", "계약기간", "갱신요구권사용", "종전계약보증금", "종전계약월세"},
		},
	},
	"연립다세대": {
		"매매": {
			url:     rtmsBase8081 + "getRTMSDataSvcRHTrade",
			columns: []string{"지역코드", "법정동", "지번", "연립다세대", "건축년도", "층", "대지권면적", "전용면적", "년", "월", "일", "거래금액", "거래유형", "중개사소재지", "해제사유발생일", "해제여부"},
		},
		"전월세": {
			url:     rtmsBase8081 + "getRTMSDataSvcRHRent",
			columns: []string{"지역코드", "법정동", "지번", "연립다세대", "건축년도", "층", "전용면적", "년", "월", "일", "보증금액", "월세금액", "계약구분", "계약기간", "갱신요구권사용", "종전계약보증금", "종전계약월세"},
		},
	},
	"상업업무용": {
		"매매": {
			url:     rtmsBase + "getRTMSDataSvcNrgTrade",
			columns: []string{"지역코드", "시군구", "법정동", "지번", "유형", "용도지역", "건물주용도", "건축년도", "층", "대지면적", "건물면적", "구분", "년", "월", "일", "거래금액", "거래유형", "중개사소재지", "해제사유발생일", "해제여부"},
		},
	},
	"토지": {
		"매매": {
			url:     rtmsBase + "getRTMSDataSvcLandTrade",
			columns: []string{"지역코드", "시군구", "법정동", "지번", "용도지역", "지목", "거래면적", "거래금액", "구분", "년", "월", "일", "거래유형", "중개사소재지", "해제사유발생일", "해제여부"},
		},
	},
	"분양입주권": {
		"매매": {
			url:     rtmsBase + "getRTMSDataSvcSilvTrade",
			columns: []string{"지역코드", "시군구", "법정동", "지번", "단지", "층", "전용면적", "구분", "년", "월", "일", "거래금액", "거래유형", "중개사소재지", "해제사유발생일", "해제여부"},
		},
	},
	"공장창고등": {
		"매매": {
			url:     rtmsBase + "getRTMSDataSvcInduTrade",
			columns: []string{"지역코드", "시군구", "법정동", "지번", "유형", "용도지역", "건물주용도", "건축년도", "층", "대지면적", "건물면적", "구분", "년", "월", "일", "거래금액", "거래유형", "중개사소재지", "해제사유발생일", "해제여부"},
		},
	},
}

// Amounts are reported in units of 10,000 KRW with thousands separators.
var transactionIntegerColumns = []string{"년", "월", "일", "층", "건축년도",
	"거래금액", "보증금액", "보증금", "월세금액", "월세", "종전계약보증금", "종전계약월세"}

var transactionFloatColumns = []string{"전용면적", "대지권면적",
	"대지면적", "연면적", "계약면적", "건물면적", "거래면적"}

var transactionRequiredColumns = []string{"지역코드", "년", "월"}

var transactionSpecs = buildTransactionSpecs()

func buildTransactionSpecs() []EndpointSpec {
	var specs []EndpointSpec
	for property, trades := range transactionEndpoints {
		for trade, e := range trades {
			specs = append(specs, EndpointSpec{
				Family:          FamilyTransaction,
				Category:        property,
				SubCategory:     trade,
				Slug:            propertySlugs[property] + "_" + tradeSlugs[trade],
				URL:             e.url,
				ExpectedColumns: e.columns,
				IntegerColumns:  subset(e.columns, transactionIntegerColumns),
				FloatColumns:    subset(e.columns, transactionFloatColumns),
				RequiredColumns: subset(e.columns, transactionRequiredColumns),
				// Transaction fields already carry Korean names.
				Labels: map[string]string{},
			})
		}
	}
	return specs
}
