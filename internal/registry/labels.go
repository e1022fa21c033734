package registry

// fieldLabels maps building ledger field codes to Korean headers.
// Every ledger endpoint refers to this one table.
var fieldLabels = map[string]string{
	"bjdongCd": "법정동코드",
	"bldNm": "건물명",
	"block": "블록",
	"bun": "번",
	"bylotCnt": "외필지수",
	"crtnDay": "생성일자",
	"guyukCd": "구역코드",
	"guyukCdNm": "구역코드명",
	"ji": "지",
	"jiguCd": "지구코드",
	"jiguCdNm": "지구코드명",
	"jiyukCd": "지역코드",
	"jiyukCdNm": "지역코드명",
	"lot": "로트",
	"mgmBldrgstPk": "관리건축물대장PK",
	"mgmUpBldrgstPk": "관리상위건축물대장PK",
	"naBjdongCd": "새주소법정동코드",
	"naMainBun": "새주소본번",
	"naRoadCd": "새주소도로코드",
	"naSubBun": "새주소부번",
	"naUgrndCd": "새주소지상지하코드",
	"newPlatPlc": "도로명대지위치",
	"platGbCd": "대지구분코드",
	"platPlc": "대지위치",
	"regstrGbCd": "대장구분코드",
	"regstrGbCdNm": "대장구분코드명",
	"regstrKindCd": "대장종류코드",
	"regstrKindCdNm": "대장종류코드명",
	"rnum": "순번",
	"sigunguCd": "시군구코드",
	"splotNm": "특수지명",
	"archArea": "건축면적",
	"atchBldArea": "부속건축물면적",
	"atchBldCnt": "부속건축물수",
	"bcRat": "건폐율",
	"engrEpi": "EPI점수",
	"engrGrade": "에너지효율등급",
	"engrRat": "에너지절감율",
	"etcPurps": "기타용도",
	"fmlyCnt": "가구수",
	"gnBldCert": "친환경건축물인증점수",
	"gnBldGrade": "친환경건축물등급",
	"hhldCnt": "세대수",
	"hoCnt": "호수",
	"indrAutoArea": "옥내자주식면적",
	"indrAutoUtcnt": "옥내자주식대수",
	"indrMechArea": "옥내기계식면적",
	"indrMechUtcnt": "옥내기계식대수",
	"itgBldCert": "지능형건축물인증점수",
	"itgBldGrade": "지능형건축물등급",
	"mainBldCnt": "주건축물수",
	"mainPurpsCd": "주용도코드",
	"mainPurpsCdNm": "주용도코드명",
	"newOldRegstrGbCd": "신구대장구분코드",
	"newOldRegstrGbCdNm": "신구대장구분코드명",
	"oudrAutoArea": "옥외자주식면적",
	"oudrAutoUtcnt": "옥외자주식대수",
	"oudrMechArea": "옥외기계식면적",
	"oudrMechUtcnt": "옥외기계식대수",
	"platArea": "대지면적",
	"pmsDay": "허가일",
	"pmsnoGbCd": "허가번호구분코드",
	"pmsnoGbCdNm": "허가번호구분코드명",
	"pmsnoKikCd": "허가번호기관코드",
	"pmsnoKikCdNm": "허가번호기관코드명",
	"pmsnoYear": "허가번호년",
	"stcnsDay": "착공일",
	"totArea": "연면적",
	"totPkngCnt": "총주차수",
	"useAprDay": "사용승인일",
	"vlRat": "용적률",
	"vlRatEstmTotArea": "용적률산정연면적",
	"dongNm": "동명칭",
	"emgenUseElvtCnt": "비상용승강기수",
	"etcRoof": "기타지붕",
	"etcStrct": "기타구조",
	"grndFlrCnt": "지상층수",
	"heit": "높이",
	"mainAtchGbCd": "주부속구분코드",
	"mainAtchGbCdNm": "주부속구분코드명",
	"rideUseElvtCnt": "승용승강기수",
	"roofCd": "지붕코드",
	"roofCdNm": "지붕코드명",
	"rserthqkAblty": "내진 능력",
	"rserthqkDsgnApplyYn": "내진 설계 적용 여부",
	"strctCd": "구조코드",
	"strctCdNm": "구조코드명",
	"totDongTotArea": "총동연면적",
	"ugrndFlrCnt": "지하층수",
	"area": "면적",
	"areaExctYn": "면적제외여부",
	"flrGbCd": "층구분코드",
	"flrGbCdNm": "층구분코드명",
	"flrNo": "층번호",
	"flrNoNm": "층번호명",
	"atchBjdongCd": "부속법정동코드",
	"atchBlock": "부속블록",
	"atchBun": "부속번",
	"atchEtcJibunNm": "부속기타지번명",
	"atchJi": "부속지",
	"atchLot": "부속로트",
	"atchPlatGbCd": "부속대지구분코드",
	"atchRegstrGbCd": "부속대장구분코드",
	"atchRegstrGbCdNm": "부속대장구분코드명",
	"atchSigunguCd": "부속시군구코드",
	"atchSplotNm": "부속특수지명",
	"exposPubuseGbCd": "전유공용구분코드",
	"exposPubuseGbCdNm": "전유공용구분코드명",
	"hoNm": "호명칭",
	"capaLube": "용량(루베)",
	"capaPsper": "용량(인용)",
	"etcMode": "기타형식",
	"modeCd": "형식코드",
	"modeCdNm": "형식코드명",
	"unitGbCd": "단위구분코드",
	"unitGbCdNm": "단위구분코드명",
	"hsprc": "주택가격",
	"etcJijigu": "기타지역지구구역",
	"jijiguCd": "지역지구구역코드",
	"jijiguCdNm": "지역지구구역코드명",
	"jijiguGbCd": "지역지구구역구분코드",
	"jijiguGbCdNm": "지역지구구역구분코드명",
	"reprYn": "대표여부",
}
