package models

// Sex as recorded for risk calculation. Both published algorithms are
// sex-specific and accept only these two values.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Ethnicity categories follow the QRISK3 classification.
type Ethnicity string

const (
	EthnicityWhite          Ethnicity = "white"
	EthnicityIndian         Ethnicity = "indian"
	EthnicityPakistani      Ethnicity = "pakistani"
	EthnicityBangladeshi    Ethnicity = "bangladeshi"
	EthnicityOtherAsian     Ethnicity = "other_asian"
	EthnicityBlackCaribbean Ethnicity = "black_caribbean"
	EthnicityBlackAfrican   Ethnicity = "black_african"
	EthnicityChinese        Ethnicity = "chinese"
	EthnicityOther          Ethnicity = "other"
)

var ethnicityCodes = map[Ethnicity]int{
	EthnicityWhite:          1,
	EthnicityIndian:         2,
	EthnicityPakistani:      3,
	EthnicityBangladeshi:    4,
	EthnicityOtherAsian:     5,
	EthnicityBlackCaribbean: 6,
	EthnicityBlackAfrican:   7,
	EthnicityChinese:        8,
	EthnicityOther:          9,
}

// Code returns the QRISK3 ethnicity category code. Unknown or empty
// ethnicity maps to white (code 1), the algorithm's reference category.
func (e Ethnicity) Code() int {
	if code, ok := ethnicityCodes[e]; ok {
		return code
	}
	return 1
}

// SmokingCategory follows the QRISK3 five-level classification.
type SmokingCategory string

const (
	SmokingNon      SmokingCategory = "non"
	SmokingEx       SmokingCategory = "ex"
	SmokingLight    SmokingCategory = "light"
	SmokingModerate SmokingCategory = "moderate"
	SmokingHeavy    SmokingCategory = "heavy"
)

var smokingCodes = map[SmokingCategory]int{
	SmokingNon:      0,
	SmokingEx:       1,
	SmokingLight:    2,
	SmokingModerate: 3,
	SmokingHeavy:    4,
}

// Code returns the QRISK3 smoking category code. Unknown or empty
// categories map to non-smoker (code 0).
func (s SmokingCategory) Code() int {
	if code, ok := smokingCodes[s]; ok {
		return code
	}
	return 0
}

// IsCurrent reports whether the category denotes a current smoker.
// Framingham carries a single binary smoking flag.
func (s SmokingCategory) IsCurrent() bool {
	return s.Code() >= 2
}

// DiabetesType distinguishes the two QRISK3 diabetes coefficients.
type DiabetesType string

const (
	DiabetesNone  DiabetesType = "none"
	DiabetesType1 DiabetesType = "type1"
	DiabetesType2 DiabetesType = "type2"
)

// Present reports whether any diabetes diagnosis is recorded.
func (d DiabetesType) Present() bool {
	return d == DiabetesType1 || d == DiabetesType2
}

// RiskCategory classifies a modified 10-year risk percentage.
type RiskCategory string

const (
	RiskLow      RiskCategory = "low"
	RiskModerate RiskCategory = "moderate"
	RiskHigh     RiskCategory = "high"
)

// RiskAlgorithm identifies which published algorithm produced a result.
type RiskAlgorithm string

const (
	AlgorithmFramingham RiskAlgorithm = "framingham"
	AlgorithmQRISK3     RiskAlgorithm = "qrisk3"
)
