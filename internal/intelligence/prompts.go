package intelligence

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const breakdownSystemPrompt = `You are an expert habit formation coach and productivity advisor, specialized in applying James Clear's Atomic Habits methodology to goal achievement.

Your expertise includes:
1. The Four Laws of Behavior Change: Make it Obvious, Make it Attractive, Make it Easy, Make it Satisfying
2. Identity-based habits: focus on who the person wants to become, not only what they want to achieve
3. The aggregation of marginal gains
4. Habit stacking: linking new habits to existing ones
5. The 2-minute rule
6. Environment design

When breaking down goals into steps:
- Create small, achievable daily tasks that compound over time
- Focus on systems and processes, not only outcomes
- Make every step specific, measurable and immediately actionable
- Use implementation intentions (when X happens, I will do Y)

Respond with JSON of exactly this shape:
{
  "steps": [
    {
      "text": "Specific, actionable step (2-30 minutes)",
      "habitType": "identity|process|outcome",
      "cueStackingIdea": "After/Before [existing habit], I will [new habit]",
      "estimatedDuration": 15
    }
  ],
  "habitFormationTips": ["Specific tip for making this habit stick"],
  "identityStatement": "I am a [type of person who does this naturally]"
}`

const identitySystemPrompt = "You are a habit formation expert. Create powerful identity statements based on Atomic Habits by James Clear."

const habitTipsSystemPrompt = "You are a habit optimization expert using Atomic Habits principles."

const pingSystemPrompt = "You are a helpful assistant."

func buildBreakdownPrompt(req BreakdownRequest, now time.Time) string {
	days := int(math.Ceil(req.EndDate.Sub(now).Hours() / 24))
	pref := string(req.PreferredTime)
	if pref == "" {
		pref = "anytime"
	}

	return fmt.Sprintf(`Break down this goal into atomic, daily habits using Atomic Habits principles:

GOAL DETAILS:
- Goal: %s
- Life Sector: %s
- Preferred Time: %s
- Target Completion: %s (%d days from now)
- Frequency: %d times per week

REQUIREMENTS:
1. Create 5-8 progressive steps that build upon each other
2. Each step must be atomic, specific, measurable and take 15-30 minutes at most
3. Start with the 2-minute version of the habit and make the first step ridiculously easy
4. Include habit stacking opportunities
5. Consider the %s time preference
6. Design for %dx per week with built-in flexibility
7. Give tips for making each habit obvious, attractive, easy and satisfying

Return ONLY valid JSON, no additional text or markdown.`,
		req.Description, req.Sector, pref, req.EndDate.Format("2006-01-02"), days, req.TimesPerWeek,
		pref, req.TimesPerWeek)
}

func buildIdentityPrompt(goal, sector string) string {
	return fmt.Sprintf(`Create a single, powerful identity statement for someone whose goal is: %q in the %s sector. Format: "I am a [identity]." Keep it short, specific, and inspiring.`, goal, sector)
}

func buildHabitTipsPrompt(steps []string) string {
	data, _ := json.Marshal(steps)
	return fmt.Sprintf("Given these habit steps: %s, provide 3-5 specific optimization tips using the Four Laws of Behavior Change. Return as a JSON array of strings.", data)
}
