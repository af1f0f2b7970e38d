package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/OrangeSorbet/annavistara/models"

	"gorm.io/gorm"
)

// AdvisorService answers free-form "what should I take / eat" questions.
// It grounds the prompt in the user's profile and recent intake so the
// advice is personal rather than generic.
type AdvisorService struct {
	db     *gorm.DB
	gemini *GeminiService
	log    *LogService
}

func NewAdvisorService(db *gorm.DB, gemini *GeminiService, log *LogService) *AdvisorService {
	return &AdvisorService{db: db, gemini: gemini, log: log}
}

// SuggestSupplement asks for supplement advice for a concern like "low
// energy" or "hair fall". Returns plain bullet lines.
func (a *AdvisorService) SuggestSupplement(ctx context.Context, userID uint, query string) ([]string, error) {
	var sb strings.Builder
	sb.WriteString("You are a cautious nutrition advisor. ")
	a.writeProfile(&sb, userID)
	fmt.Fprintf(&sb, "The user asks about supplements for: %q. ", query)
	sb.WriteString("Suggest 3 to 5 supplements with typical doses, note any that need a doctor's sign-off, and keep each suggestion to one line. Return plain bullet points, no other text.")

	text, err := a.gemini.GenerateText(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	return splitBullets(text), nil
}

// SuggestMeal asks for meal ideas under a dietary preference and a daily
// budget in rupees. A zero budget means unconstrained. When a restaurant
// menu photo is supplied the suggestions are picked from that menu rather
// than invented.
func (a *AdvisorService) SuggestMeal(ctx context.Context, userID uint, menuImage []byte, menuMime string, diet string, budgetINR int) ([]string, error) {
	var sb strings.Builder
	sb.WriteString("You are a practical meal planner. ")
	a.writeProfile(&sb, userID)
	if diet != "" {
		fmt.Fprintf(&sb, "Dietary preference: %s. ", diet)
	}
	if budgetINR > 0 {
		fmt.Fprintf(&sb, "Daily food budget: about %d INR. ", budgetINR)
	}

	if len(menuImage) > 0 {
		sb.WriteString("This photo shows a restaurant menu. Pick the 3 to 5 dishes from it that best fill the biggest gaps in the intake above and fit the preference and budget. One line per dish, with its menu name. Return plain bullet points, no other text.")
		text, err := a.gemini.GenerateFromImage(ctx, sb.String(), menuImage, menuMime)
		if err != nil {
			return nil, err
		}
		return splitBullets(text), nil
	}

	sb.WriteString("Suggest 3 to 5 realistic meals for today that fill the biggest gaps in the intake above. One line per meal, with a rough portion size. Return plain bullet points, no other text.")
	text, err := a.gemini.GenerateText(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	return splitBullets(text), nil
}

// writeProfile appends the user's profile and today's intake to the prompt.
// Missing data degrades the prompt, not the request.
func (a *AdvisorService) writeProfile(sb *strings.Builder, userID uint) {
	var user models.User
	if err := a.db.First(&user, userID).Error; err == nil && user.Profile.Complete() {
		fmt.Fprintf(sb, "The user is %d years old, %.0f cm, %.0f kg. ",
			user.Profile.Age, user.Profile.HeightCm, user.Profile.WeightKg)
		if user.Profile.Location != "" {
			fmt.Fprintf(sb, "They live in %s. ", user.Profile.Location)
		}
	}

	today := todayDate()
	day, err := a.log.GetDay(userID, today)
	if err != nil || day.Empty() {
		sb.WriteString("Nothing has been logged today. ")
		return
	}
	sb.WriteString("Logged today: ")
	for _, m := range day.Meals {
		fmt.Fprintf(sb, "%s; ", m.Name)
	}
	for _, sp := range day.Supplements {
		fmt.Fprintf(sb, "%s (%s); ", sp.Name, sp.Dose)
	}
}

func splitBullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-•* \t")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
