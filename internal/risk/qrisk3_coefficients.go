package risk

import "github.com/mkoziy/cardiorisk/internal/models"

// The QRISK3-2017 coefficient sets (Hippisley-Cox et al., BMJ 2017;
// published algorithm release). Coefficients are kept in structured
// tables rather than accumulate statements so each term can be audited
// and tested individually.
//
// Ethnicity arrays are indexed by the QRISK3 category code (1-9, with
// white as the zero reference); smoking arrays by the five-level
// smoking code.

// qriskConditionCoefficients are the comorbidity main effects.
// Coefficients a sex does not carry are zero.
type qriskConditionCoefficients struct {
	AtrialFibrillation     float64
	AtypicalAntipsychotics float64
	Corticosteroids        float64
	ErectileDysfunction    float64
	Migraine               float64
	RheumatoidArthritis    float64
	ChronicKidneyDisease   float64
	SLE                    float64
	TreatedHypertension    float64
	Type1Diabetes          float64
	Type2Diabetes          float64
	FamilyHistoryCVD       float64
}

// qriskInteractionCoefficients scale one of the two fractional-
// polynomial age terms. Coefficients a sex does not carry are zero.
type qriskInteractionCoefficients struct {
	Smoking              [5]float64
	AtrialFibrillation   float64
	Corticosteroids      float64
	ErectileDysfunction  float64
	Migraine             float64
	ChronicKidneyDisease float64
	SLE                  float64
	TreatedHypertension  float64
	Type1Diabetes        float64
	Type2Diabetes        float64
	BMI1                 float64
	BMI2                 float64
	FamilyHistoryCVD     float64
	SBP                  float64
	Townsend             float64
}

type qriskCoefficients struct {
	BaselineSurvival float64

	Ethnicity [10]float64
	Smoking   [5]float64

	// Centering means of the derivation cohort.
	AgeMean1     float64
	AgeMean2     float64
	BMIMean1     float64
	BMIMean2     float64
	RatioMean    float64
	SBPMean      float64
	SBPSDMean    float64
	TownsendMean float64

	// Continuous main effects.
	Age1     float64
	Age2     float64
	BMI1     float64
	BMI2     float64
	Ratio    float64
	SBP      float64
	SBPSD    float64
	Townsend float64

	Conditions qriskConditionCoefficients

	AgeInteractions1 qriskInteractionCoefficients
	AgeInteractions2 qriskInteractionCoefficients
}

var qriskBySex = map[models.Sex]qriskCoefficients{
	models.SexFemale: {
		BaselineSurvival: 0.988876402378082,

		Ethnicity: [10]float64{
			0, 0,
			0.2804031433299542,
			0.5629899414207540,
			0.2959000085111651,
			0.0727853798779825,
			-0.1707213550885732,
			-0.3937104331487497,
			-0.3263249528353027,
			-0.1712705688324178,
		},
		Smoking: [5]float64{
			0,
			0.1338683378654626,
			0.5620085801243854,
			0.6674959337750255,
			0.8494925237903145,
		},

		AgeMean1:     0.053274843841791,
		AgeMean2:     4.332503318786621,
		BMIMean1:     0.154946178197861,
		BMIMean2:     0.144462317228317,
		RatioMean:    3.476326465606689,
		SBPMean:      123.130012512207030,
		SBPSDMean:    9.002537727355957,
		TownsendMean: 0.392308831214905,

		Age1:     -8.1388109247726188,
		Age2:     0.7973337668969910,
		BMI1:     0.2923609227546005,
		BMI2:     -4.1513300213837665,
		Ratio:    0.1533803582080255,
		SBP:      0.0131314884071034,
		SBPSD:    0.0078894541014586,
		Townsend: 0.0772237905885901,

		Conditions: qriskConditionCoefficients{
			AtrialFibrillation:     1.5923354969269663,
			AtypicalAntipsychotics: 0.2523764207011556,
			Corticosteroids:        0.5952072530460185,
			Migraine:               0.3012672608703450,
			RheumatoidArthritis:    0.2136480343518194,
			ChronicKidneyDisease:   0.6519456949384583,
			SLE:                    0.7588093865426769,
			TreatedHypertension:    0.5093159368342300,
			Type1Diabetes:          1.7267977510537347,
			Type2Diabetes:          1.0688773244615468,
			FamilyHistoryCVD:       0.4544531902089621,
		},

		AgeInteractions1: qriskInteractionCoefficients{
			Smoking: [5]float64{
				0,
				-4.7057161785851891,
				-2.7430383403573337,
				-0.8660808882939218,
				0.9024156236971065,
			},
			AtrialFibrillation:   19.938034889546561,
			Corticosteroids:      -0.9840804523593628,
			Migraine:             1.7634979587872999,
			ChronicKidneyDisease: -3.5874047731694114,
			SLE:                  19.690303738638292,
			TreatedHypertension:  11.872809733921812,
			Type1Diabetes:        -1.2444332714320747,
			Type2Diabetes:        6.8652342000009599,
			BMI1:                 23.802623412141742,
			BMI2:                 -71.184947692087007,
			FamilyHistoryCVD:     0.9946780794043513,
			SBP:                  0.0341318423386155,
			Townsend:             -1.0301180802035639,
		},
		AgeInteractions2: qriskInteractionCoefficients{
			Smoking: [5]float64{
				0,
				-0.0755892446431930,
				-0.1195119287486707,
				-0.1036630639757192,
				-0.1399185359171839,
			},
			AtrialFibrillation:   -0.0761826510111625,
			Corticosteroids:      -0.1200536494674247,
			Migraine:             -0.0655869178986999,
			ChronicKidneyDisease: -0.2268887308644251,
			SLE:                  0.0773479496790163,
			TreatedHypertension:  0.0009685782358817,
			Type1Diabetes:        -0.2872406462448895,
			Type2Diabetes:        -0.0971122525906955,
			BMI1:                 0.5236995893366443,
			BMI2:                 0.0457441901223238,
			FamilyHistoryCVD:     -0.0768850516984230,
			SBP:                  -0.0015082501423272,
			Townsend:             -0.0315934146749623,
		},
	},

	models.SexMale: {
		BaselineSurvival: 0.977268040180206,

		Ethnicity: [10]float64{
			0, 0,
			0.2771924876030827,
			0.4744636071493127,
			0.5296172991968937,
			0.0351001591862990,
			-0.3580789966932792,
			-0.4005648523216514,
			-0.4152279288983017,
			-0.2632134813474997,
		},
		Smoking: [5]float64{
			0,
			0.1912822286338898,
			0.5524158819264555,
			0.6383505302750607,
			0.7898381988185802,
		},

		AgeMean1:     0.234766781330109,
		AgeMean2:     77.284080505371094,
		BMIMean1:     0.149176135659218,
		BMIMean2:     0.141913309693336,
		RatioMean:    4.300998687744141,
		SBPMean:      128.571578979492190,
		SBPSDMean:    8.756621360778809,
		TownsendMean: 0.526304900646210,

		Age1:     -17.839781666005575,
		Age2:     0.0022964880605765,
		BMI1:     2.4562776660536358,
		BMI2:     -8.3011122314711354,
		Ratio:    0.1734019852571811,
		SBP:      0.0129101265425533,
		SBPSD:    0.0102519142912905,
		Townsend: 0.0332682012772873,

		Conditions: qriskConditionCoefficients{
			AtrialFibrillation:     0.8820923692805466,
			AtypicalAntipsychotics: 0.1304687985517351,
			Corticosteroids:        0.4548539975044554,
			ErectileDysfunction:    0.2225185908670538,
			Migraine:               0.2558417807415991,
			RheumatoidArthritis:    0.2097065801395657,
			ChronicKidneyDisease:   0.7185326128827438,
			SLE:                    0.4401572174457522,
			TreatedHypertension:    0.5165045533406737,
			Type1Diabetes:          1.2343425521675175,
			Type2Diabetes:          0.8594207143093222,
			FamilyHistoryCVD:       0.5405546900939016,
		},

		AgeInteractions1: qriskInteractionCoefficients{
			Smoking: [5]float64{
				0,
				-0.2101113393351635,
				0.7526867644750319,
				0.9931588755640579,
				2.1331163414389076,
			},
			AtrialFibrillation:   3.4896675530623207,
			Corticosteroids:      1.1708133653489108,
			ErectileDysfunction:  -1.5064009857454310,
			Migraine:             2.3491159871402441,
			ChronicKidneyDisease: -0.5065671632722369,
			TreatedHypertension:  6.5114581098532671,
			Type1Diabetes:        5.3379864878006531,
			Type2Diabetes:        3.6461817406221311,
			BMI1:                 31.004952956033886,
			BMI2:                 -111.29157184391405,
			FamilyHistoryCVD:     2.7808628508531887,
			SBP:                  0.0188585244698659,
			Townsend:             -0.1007554870063731,
		},
		AgeInteractions2: qriskInteractionCoefficients{
			Smoking: [5]float64{
				0,
				-0.0004985487027533,
				-0.0007987563331739,
				-0.0008370618426625,
				-0.0007840031915564,
			},
			AtrialFibrillation:   -0.0003499560834064,
			Corticosteroids:      -0.0002496045095297,
			ErectileDysfunction:  -0.0011058218441227,
			Migraine:             0.0001989644604148,
			ChronicKidneyDisease: -0.0018325930166499,
			TreatedHypertension:  0.0006383805310417,
			Type1Diabetes:        0.0006409780808753,
			Type2Diabetes:        -0.0002469569558887,
			BMI1:                 0.0050380102356322,
			BMI2:                 -0.0130744830025243,
			FamilyHistoryCVD:     -0.0002479180990740,
			SBP:                  -0.0000127187419159,
			Townsend:             -0.0000932996423233,
		},
	},
}
