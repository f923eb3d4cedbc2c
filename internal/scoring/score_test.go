package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bestAnswers() Answers {
	return Answers{
		Age:           "25-35",
		LeaseDuration: "5-9",
		Insurance:     "both",
		Balance:       "100000+",
		Location:      "A",
		Size:          "45-80",
	}
}

func worstAnswers() Answers {
	return Answers{
		Age:           "61+",
		LeaseDuration: "25+",
		Insurance:     "none",
		Balance:       "<24000",
		Location:      "D",
		Size:          "<25",
	}
}

func TestScore_MaximumAnswers(t *testing.T) {
	result, err := Score(bestAnswers())

	require.NoError(t, err)
	assert.Equal(t, 30, result.TotalPoints)
	assert.Equal(t, RecommendationExcellent, result.Recommendation)
	assert.Equal(t, 100, result.Percent)
}

func TestScore_MinimumAnswers(t *testing.T) {
	result, err := Score(worstAnswers())

	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalPoints)
	assert.Equal(t, RecommendationPoor, result.Recommendation)
	assert.Equal(t, 17, result.Percent)
}

func TestScore_BreakdownInFixedSlotOrder(t *testing.T) {
	result, err := Score(bestAnswers())

	require.NoError(t, err)
	require.Len(t, result.Breakdown, 6)
	for i, criterion := range Criteria {
		assert.Equal(t, criterion, result.Breakdown[i].Criterion)
		assert.Equal(t, 5, result.Breakdown[i].Points)
		assert.NotEmpty(t, result.Breakdown[i].Label)
	}
}

func TestScore_TotalIsSumOfBreakdown(t *testing.T) {
	answers := Answers{
		Age:           "51-60",       // 3
		LeaseDuration: "10-14",       // 4
		Insurance:     "private",     // 3
		Balance:       "48000-71999", // 3
		Location:      "B",           // 4
		Size:          "25-44",       // 3
	}

	result, err := Score(answers)

	require.NoError(t, err)
	sum := 0
	for _, entry := range result.Breakdown {
		sum += entry.Points
	}
	assert.Equal(t, sum, result.TotalPoints)
	assert.Equal(t, 20, result.TotalPoints)
}

func TestScore_IsDeterministic(t *testing.T) {
	first, err := Score(bestAnswers())
	require.NoError(t, err)

	second, err := Score(bestAnswers())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScore_EmptySlotIsIncompleteForm(t *testing.T) {
	answers := bestAnswers()
	answers.Insurance = ""

	result, err := Score(answers)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrIncompleteForm)
}

func TestScore_UnknownCodeIsIncompleteForm(t *testing.T) {
	answers := bestAnswers()
	answers.Balance = "a-million"

	result, err := Score(answers)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrIncompleteForm)
}

func TestScore_AllEmptyIsIncompleteForm(t *testing.T) {
	result, err := Score(Answers{})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrIncompleteForm)
}

func TestRecommend_BandBoundaries(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{30, RecommendationExcellent},
		{25, RecommendationExcellent},
		{24, RecommendationGood},
		{15, RecommendationGood},
		{14, RecommendationFair},
		{10, RecommendationFair},
		{9, RecommendationPoor},
		{0, RecommendationPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Recommend(tt.points), "points=%d", tt.points)
	}
}

func TestScore_ExcellentBoundaryViaAnswers(t *testing.T) {
	// 5+5+5+5+5+0 = 25: the lowest Excellent total.
	answers := bestAnswers()
	answers.Insurance = "none"

	result, err := Score(answers)

	require.NoError(t, err)
	assert.Equal(t, 25, result.TotalPoints)
	assert.Equal(t, RecommendationExcellent, result.Recommendation)

	// Drop one more point: 24 falls into the Good band.
	answers.LeaseDuration = "10-14"
	result, err = Score(answers)

	require.NoError(t, err)
	assert.Equal(t, 24, result.TotalPoints)
	assert.Equal(t, RecommendationGood, result.Recommendation)
}

func TestPercent_Rounds(t *testing.T) {
	assert.Equal(t, 100, Percent(30))
	assert.Equal(t, 83, Percent(25))
	assert.Equal(t, 80, Percent(24))
	assert.Equal(t, 17, Percent(5))
	assert.Equal(t, 0, Percent(0))
}

func TestOptions_ReturnsCopies(t *testing.T) {
	opts := Options(CriterionAge)
	require.NotEmpty(t, opts)
	opts[0].Points = 99

	fresh := Options(CriterionAge)
	assert.Equal(t, 2, fresh[0].Points)
}

func TestOptions_UnknownCriterion(t *testing.T) {
	assert.Nil(t, Options(Criterion("creditHistory")))
}

func TestAllOptions_CoversAllCriteria(t *testing.T) {
	all := AllOptions()
	require.Len(t, all, 6)
	for _, criterion := range Criteria {
		assert.NotEmpty(t, all[criterion])
	}
}
