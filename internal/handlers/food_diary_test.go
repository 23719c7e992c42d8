package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-app-server/internal/models"
)

func mealAt(t time.Time, calories ...float64) models.MealLog {
	meal := models.MealLog{MealType: models.MealLunch, EatenAt: t}
	for _, cal := range calories {
		meal.Foods = append(meal.Foods, models.MealFood{Name: "food", Quantity: 100, Calories: cal})
	}
	return meal
}

func TestBuildProgressSummaryEmpty(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	summary := BuildProgressSummary(nil, now)

	assert.Equal(t, 30, summary.Days)
	assert.Zero(t, summary.MealsLogged)
	assert.Zero(t, summary.TotalCalories)
	assert.Zero(t, summary.AvgCalories)
	assert.Zero(t, summary.StreakDays)
	assert.Empty(t, summary.Achievements)
}

func TestBuildProgressSummaryTotalsAndAverage(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	meals := []models.MealLog{
		mealAt(now.AddDate(0, 0, -1), 400, 200),
		mealAt(now.AddDate(0, 0, -2), 600),
	}

	summary := BuildProgressSummary(meals, now)

	assert.Equal(t, 2, summary.MealsLogged)
	assert.Equal(t, 1200.0, summary.TotalCalories)
	// Two distinct logged days, so the average is per logged day.
	assert.Equal(t, 600.0, summary.AvgCalories)
}

func TestBuildProgressSummaryStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	meals := []models.MealLog{
		mealAt(now, 500),
		mealAt(now.AddDate(0, 0, -1), 500),
		mealAt(now.AddDate(0, 0, -2), 500),
		// Gap on day -3 breaks the streak.
		mealAt(now.AddDate(0, 0, -4), 500),
	}

	summary := BuildProgressSummary(meals, now)
	assert.Equal(t, 3, summary.StreakDays)
}

func TestBuildProgressSummaryStreakSurvivesUnloggedToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Nothing logged today yet; the streak counts back from yesterday.
	meals := []models.MealLog{
		mealAt(now.AddDate(0, 0, -1), 500),
		mealAt(now.AddDate(0, 0, -2), 500),
	}

	summary := BuildProgressSummary(meals, now)
	assert.Equal(t, 2, summary.StreakDays)
}

func TestBuildProgressSummaryAchievements(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	codes := func(s ProgressSummary) []string {
		var out []string
		for _, a := range s.Achievements {
			out = append(out, a.Code)
		}
		return out
	}

	one := BuildProgressSummary([]models.MealLog{mealAt(now.AddDate(0, 0, -5), 300)}, now)
	assert.Equal(t, []string{"first_meal"}, codes(one))

	// Seven consecutive days unlocks the streak achievement.
	var week []models.MealLog
	for i := 0; i < 7; i++ {
		week = append(week, mealAt(now.AddDate(0, 0, -i), 300))
	}
	streak := BuildProgressSummary(week, now)
	require.Equal(t, 7, streak.StreakDays)
	assert.Contains(t, codes(streak), "week_streak")

	// Fifty meals on the same day: volume achievement without a streak.
	var many []models.MealLog
	for i := 0; i < 50; i++ {
		many = append(many, mealAt(now.AddDate(0, 0, -10), 100))
	}
	fifty := BuildProgressSummary(many, now)
	assert.Contains(t, codes(fifty), "fifty_meals")
	assert.Contains(t, codes(fifty), "first_meal")
	assert.NotContains(t, codes(fifty), "week_streak")
}
