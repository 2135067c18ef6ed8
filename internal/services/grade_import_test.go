package services

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParserOnlyService() *GradeImportService {
	// Parse never touches storage; a nil DB is fine here.
	return NewGradeImportService(nil, logrus.New())
}

func TestGradeImportParse(t *testing.T) {
	csv := strings.Join([]string{
		"external_ref,performance_grade,snaps_share,transfer_risk",
		"ol-001,84.5,0.91,12",
		"qb-002,71,,35",
	}, "\n")

	rows, err := newParserOnlyService().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "ol-001", first.ExternalRef)
	require.NotNil(t, first.PerformanceGrade)
	assert.Equal(t, 84.5, *first.PerformanceGrade)
	require.NotNil(t, first.SnapsShare)
	assert.Equal(t, 0.91, *first.SnapsShare)
	require.NotNil(t, first.TransferRisk)
	assert.Equal(t, 12.0, *first.TransferRisk)
	assert.Nil(t, first.InjuryRisk)

	// Empty cells leave the field untouched.
	second := rows[1]
	assert.Nil(t, second.SnapsShare)
	require.NotNil(t, second.PerformanceGrade)
	assert.Equal(t, 71.0, *second.PerformanceGrade)
}

func TestGradeImportParseHeaderValidation(t *testing.T) {
	t.Run("missing external_ref column", func(t *testing.T) {
		csv := "name,performance_grade\nSomeone,80\n"
		_, err := newParserOnlyService().Parse(strings.NewReader(csv))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "external_ref")
	})

	t.Run("no recognized grade columns", func(t *testing.T) {
		csv := "external_ref,favorite_color\nol-001,blue\n"
		_, err := newParserOnlyService().Parse(strings.NewReader(csv))
		require.Error(t, err)
	})

	t.Run("header is case-insensitive", func(t *testing.T) {
		csv := "External_Ref,Performance_Grade\nol-001,80\n"
		rows, err := newParserOnlyService().Parse(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})
}

func TestGradeImportParseAllOrNothing(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{
			"non-numeric value",
			"external_ref,performance_grade\nol-001,84\nqb-002,not-a-number\n",
		},
		{
			"grade out of range",
			"external_ref,performance_grade\nol-001,84\nqb-002,140\n",
		},
		{
			"snaps share out of range",
			"external_ref,snaps_share\nol-001,0.5\nqb-002,1.5\n",
		},
		{
			"empty external_ref",
			"external_ref,performance_grade\n,84\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := newParserOnlyService().Parse(strings.NewReader(tc.csv))
			assert.Error(t, err)
			assert.Nil(t, rows)
		})
	}
}

func TestValidateGradeValueRanges(t *testing.T) {
	assert.NoError(t, validateGradeValue("snaps_share", 0))
	assert.NoError(t, validateGradeValue("snaps_share", 1))
	assert.Error(t, validateGradeValue("snaps_share", 1.01))

	assert.NoError(t, validateGradeValue("injury_risk", 100))
	assert.Error(t, validateGradeValue("injury_risk", 100.5))
	assert.Error(t, validateGradeValue("performance_grade", -1))
}
