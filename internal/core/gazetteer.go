package core

// Fixed lookup tables for the line parser. They are part of the parsing
// behaviour, so they live in code rather than configuration.

// levelKeywords maps exact tokens to tiers. The canonical tier names are
// included so that the level column of an exported row is recognized. The
// school pass runs first, so a row whose school is 미분류 loses its level
// token to the school field.
var levelKeywords = map[string]Level{
	"초":    LevelElementary,
	"중":    LevelMiddle,
	"고":    LevelHigh,
	"대":    LevelCollege,
	"초등학교": LevelElementary,
	"중학교":  LevelMiddle,
	"고등학교": LevelHigh,
	"대학교":  LevelCollege,
	"기타":   LevelOther,
	"초등":   LevelElementary,
	"중등":   LevelMiddle,
	"고등":   LevelHigh,
	"대학":   LevelCollege,
}

// schoolKeywords are substrings that mark a token as a school name.
var schoolKeywords = []string{"학교", "캠퍼스", "센터", "초", "중", "고"}

// schoolLevelHints derive a tier from the school name when no level token was
// present. Checked in order.
var schoolLevelHints = []struct {
	substr string
	level  Level
}{
	{"초등", LevelElementary},
	{"중학", LevelMiddle},
	{"고등", LevelHigh},
	{"대학", LevelCollege},
}

var provinces = []string{"경기", "강원", "충북", "충남", "전북", "전남", "경북", "경남"}

var cities = []string{
	"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종",
	"수원", "용인", "고양", "성남", "부천", "화성", "안산", "남양주", "안양", "평택",
	"의정부", "파주", "시흥", "김포", "광명", "군포", "오산", "이천", "양주", "구리",
	"안성", "포천", "의왕", "하남", "여주", "동두천", "과천",
	"청주", "충주", "제천", "천안", "공주", "보령", "아산", "서산", "논산", "계룡", "당진",
	"전주", "군산", "익산", "정읍", "남원", "김제",
	"목포", "여수", "순천", "나주", "광양",
	"포항", "경주", "김천", "안동", "구미", "영주", "상주", "문경", "경산",
	"창원", "진주", "통영", "사천", "김해", "밀양", "거제", "양산",
	"제주", "서귀포",
}

var (
	provinceSet = toSet(provinces)
	citySet     = toSet(cities)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
