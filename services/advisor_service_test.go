package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestMealFromMenuPhoto(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	logSvc := NewLogService(db)

	var body string
	gemini := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(b)
		fmt.Fprint(w, geminiReply("- grilled paneer\n- dal tadka\n- curd rice\n"))
	})
	svc := NewAdvisorService(db, gemini, logSvc)

	menu := []byte("fake menu photo")
	suggestions, err := svc.SuggestMeal(context.Background(), user.ID, menu, "image/jpeg", "vegetarian", 300)
	require.NoError(t, err)
	require.Equal(t, []string{"grilled paneer", "dal tadka", "curd rice"}, suggestions)

	// the menu photo rides along as an inline image part
	require.Contains(t, body, `"inline_data"`)
	require.Contains(t, body, `"image/jpeg"`)
	require.Contains(t, body, "restaurant menu")
	require.Contains(t, body, "vegetarian")
	require.Contains(t, body, "300 INR")
}

func TestSuggestMealWithoutPhoto(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	logSvc := NewLogService(db)

	var body string
	gemini := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(b)
		fmt.Fprint(w, geminiReply("- khichdi with ghee\n"))
	})
	svc := NewAdvisorService(db, gemini, logSvc)

	suggestions, err := svc.SuggestMeal(context.Background(), user.ID, nil, "", "", 0)
	require.NoError(t, err)
	require.Equal(t, []string{"khichdi with ghee"}, suggestions)
	require.NotContains(t, body, "inline_data")
	require.NotContains(t, body, "restaurant menu")
}

func TestSuggestSupplementGroundsPromptInProfile(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	logSvc := NewLogService(db)

	var body string
	gemini := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(b)
		fmt.Fprint(w, geminiReply("* magnesium glycinate 300 mg\n* vitamin D3 1000 IU\n"))
	})
	svc := NewAdvisorService(db, gemini, logSvc)

	suggestions, err := svc.SuggestSupplement(context.Background(), user.ID, "low energy")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	require.True(t, strings.HasPrefix(suggestions[0], "magnesium"))

	require.Contains(t, body, "30 years old")
	require.Contains(t, body, "low energy")
}
