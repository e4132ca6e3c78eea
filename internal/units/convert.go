// Package units converts clinical measurements between the unit systems
// accepted by the risk calculators. All conversions are single
// multiplicative factors registered as reciprocal pairs.
package units

import "fmt"

// Quantity identifies the clinical quantity being converted.
type Quantity string

const (
	Cholesterol   Quantity = "cholesterol"
	Triglycerides Quantity = "triglycerides"
	Lipoprotein   Quantity = "lpa"
	ApoB          Quantity = "apob"
	Glucose       Quantity = "glucose"
	Creatinine    Quantity = "creatinine"
	Height        Quantity = "height"
	Weight        Quantity = "weight"
)

// Unit is a clinical unit symbol.
type Unit string

const (
	MmolPerL Unit = "mmol/L"
	MgPerDL  Unit = "mg/dL"
	NmolPerL Unit = "nmol/L"
	GPerL    Unit = "g/L"
	UmolPerL Unit = "umol/L"
	Cm       Unit = "cm"
	Inches   Unit = "in"
	Kg       Unit = "kg"
	Lb       Unit = "lb"
)

// Multiplicative factors from the first unit to the second. The reverse
// direction is derived as the reciprocal, so round-tripping is exact up
// to floating-point error.
const (
	cholesterolMmolToMg = 38.67    // total/HDL/LDL cholesterol mmol/L -> mg/dL
	triglycerideMmolToMg = 88.57   // triglycerides mmol/L -> mg/dL
	lpaMgToNmol         = 2.5      // Lp(a) mg/dL -> nmol/L
	apoBGToMg           = 100.0    // ApoB g/L -> mg/dL
	glucoseMmolToMg     = 18.02    // glucose mmol/L -> mg/dL
	creatinineMgToUmol  = 88.4     // creatinine mg/dL -> umol/L
	heightInToCm        = 2.54     // height in -> cm
	weightKgToLb        = 2.20462  // weight kg -> lb
)

type conversion struct {
	quantity Quantity
	from     Unit
	to       Unit
}

var factors = map[conversion]float64{
	{Cholesterol, MmolPerL, MgPerDL}:   cholesterolMmolToMg,
	{Cholesterol, MgPerDL, MmolPerL}:   1 / cholesterolMmolToMg,
	{Triglycerides, MmolPerL, MgPerDL}: triglycerideMmolToMg,
	{Triglycerides, MgPerDL, MmolPerL}: 1 / triglycerideMmolToMg,
	{Lipoprotein, MgPerDL, NmolPerL}:   lpaMgToNmol,
	{Lipoprotein, NmolPerL, MgPerDL}:   1 / lpaMgToNmol,
	{ApoB, GPerL, MgPerDL}:             apoBGToMg,
	{ApoB, MgPerDL, GPerL}:             1 / apoBGToMg,
	{Glucose, MmolPerL, MgPerDL}:       glucoseMmolToMg,
	{Glucose, MgPerDL, MmolPerL}:       1 / glucoseMmolToMg,
	{Creatinine, MgPerDL, UmolPerL}:    creatinineMgToUmol,
	{Creatinine, UmolPerL, MgPerDL}:    1 / creatinineMgToUmol,
	{Height, Inches, Cm}:               heightInToCm,
	{Height, Cm, Inches}:               1 / heightInToCm,
	{Weight, Kg, Lb}:                   weightKgToLb,
	{Weight, Lb, Kg}:                   1 / weightKgToLb,
}

// UnsupportedConversionError reports a unit pair with no registered factor.
// Unregistered pairs are a hard error: silently returning the input
// unchanged would corrupt downstream risk math.
type UnsupportedConversionError struct {
	Quantity Quantity
	From     Unit
	To       Unit
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("no conversion registered for %s from %s to %s", e.Quantity, e.From, e.To)
}

// Convert converts value between two units of the given quantity.
// Identical units return the value unchanged.
func Convert(value float64, quantity Quantity, from, to Unit) (float64, error) {
	if from == to {
		return value, nil
	}
	factor, ok := factors[conversion{quantity, from, to}]
	if !ok {
		return 0, &UnsupportedConversionError{Quantity: quantity, From: from, To: to}
	}
	return value * factor, nil
}

// Pairs returns every registered conversion as (quantity, from, to)
// triples. Used by tests to assert the round-trip law holds table-wide.
func Pairs() []struct {
	Quantity Quantity
	From     Unit
	To       Unit
} {
	out := make([]struct {
		Quantity Quantity
		From     Unit
		To       Unit
	}, 0, len(factors))
	for c := range factors {
		out = append(out, struct {
			Quantity Quantity
			From     Unit
			To       Unit
		}{c.quantity, c.from, c.to})
	}
	return out
}
