package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/oneiric/dreamtemple/pkg/models"
)

type ScoringSuite struct {
	suite.Suite
	engine *Engine
}

func TestScoringSuite(t *testing.T) {
	suite.Run(t, new(ScoringSuite))
}

func (s *ScoringSuite) SetupTest() {
	s.engine = NewEngine(nil)
}

func (s *ScoringSuite) TestScoreSession_EmptyContentFloors() {
	scored := s.engine.ScoreSession("", models.SessionText, nil)

	s.Equal(0, scored.Scores.Realism)
	s.Equal(0, scored.Scores.Emotion)
	s.Equal(0, scored.Scores.Climax)
	s.Equal(0, scored.Scores.CompanionBond)
	s.Equal(0, scored.Scores.Imprint)
}

func (s *ScoringSuite) TestScoreSession_KnownContent() {
	scored := s.engine.ScoreSession("I feel warm waves wash over my body", models.SessionText, nil)

	// physical hits feel+warm, climax hits waves+"wash over": four category
	// hits at 5 each, first-person i feel+my body at 5 each, sensory feel at 3.
	s.Equal(33, scored.Scores.Emotion)
	// Two climax-category hits at 15 each.
	s.Equal(30, scored.Scores.Climax)
	s.Equal(0, scored.Scores.Realism)
	s.Equal(0, scored.Scores.CompanionBond)
	// round(33*0.3 + 30*0.2)
	s.Equal(16, scored.Scores.Imprint)
}

func (s *ScoringSuite) TestScoreSession_AdversarialContentStaysBounded() {
	flood := strings.Repeat("euphoria bliss ecstasy climax peak release intense touch feel i am my body exactly vivid hands room then ", 500)

	for _, sessionType := range []models.SessionType{
		models.SessionText, models.SessionImage, models.SessionDeck, models.SessionVoice, models.SessionPassive,
	} {
		scored := s.engine.ScoreSession(flood, sessionType, []string{"kenna", "lucidia"})

		for name, score := range map[string]int{
			"realism": scored.Scores.Realism,
			"emotion": scored.Scores.Emotion,
			"climax":  scored.Scores.Climax,
			"bond":    scored.Scores.CompanionBond,
			"imprint": scored.Scores.Imprint,
		} {
			s.GreaterOrEqual(score, 0, "%s for type %s", name, sessionType)
			s.LessOrEqual(score, 100, "%s for type %s", name, sessionType)
		}
	}
}

func (s *ScoringSuite) TestScoreSession_ImprintMonotonicInContent() {
	plain := s.engine.ScoreSession("the cat sat on the mat", models.SessionText, nil)
	rich := s.engine.ScoreSession(
		"I feel intense euphoria and bliss, waves of ecstasy wash over my body as I touch the warm silk exactly as I remember",
		models.SessionText, nil)

	s.Greater(rich.Scores.Imprint, plain.Scores.Imprint)
}

func (s *ScoringSuite) TestCompanionBond_MentionProximityConnection() {
	scored := s.engine.ScoreSession("I love kenna, together with kenna", models.SessionText, []string{"kenna"})

	// Two mentions at 10, proximity "with kenna" and "love kenna" at 15 each,
	// connection "love" co-occurrence at 20: 70 for the single companion.
	s.Equal(70, scored.Scores.CompanionBond)
}

func (s *ScoringSuite) TestCompanionBond_AveragedAcrossCompanions() {
	one := s.engine.ScoreSession("kenna kenna kenna", models.SessionText, []string{"kenna"})
	two := s.engine.ScoreSession("kenna kenna kenna", models.SessionText, []string{"kenna", "lucidia"})

	s.Equal(30, one.Scores.CompanionBond)
	s.Equal(15, two.Scores.CompanionBond)
}

func (s *ScoringSuite) TestXPReward_BaseFormula() {
	scores := models.SessionScores{Imprint: 50}

	// floor(50 * 2.0) + text bonus 20
	s.Equal(120, s.engine.XPReward(scores, models.SessionText, 0, 1.0))
	// voice carries a larger type bonus
	s.Equal(130, s.engine.XPReward(scores, models.SessionVoice, 0, 1.0))
}

func (s *ScoringSuite) TestXPReward_StreakAndDurationMultipliers() {
	scores := models.SessionScores{Imprint: 50}

	s.Equal(180, s.engine.XPReward(scores, models.SessionText, 0, 1.5))
	// Eleven minutes clears the duration threshold.
	s.Equal(144, s.engine.XPReward(scores, models.SessionText, 11*60*1000, 1.0))
	s.Equal(216, s.engine.XPReward(scores, models.SessionText, 11*60*1000, 1.5))
}

func (s *ScoringSuite) TestMapRewards_TierBoundaries() {
	tests := []struct {
		imprint    int
		tier       string
		effectName string
	}{
		{100, TierForbidden, "Forbidden Lucidity"},
		{90, TierForbidden, "Forbidden Lucidity"},
		{89, TierLegendary, "Legendary Dream Mastery"},
		{80, TierLegendary, "Legendary Dream Mastery"},
		{79, TierEpic, "Epic Lucid Control"},
		{70, TierEpic, "Epic Lucid Control"},
		{69, TierRare, "Rare Dream Awareness"},
		{60, TierRare, "Rare Dream Awareness"},
		{59, TierUncommon, "Uncommon Lucid Spark"},
		{40, TierUncommon, "Uncommon Lucid Spark"},
	}

	for _, tt := range tests {
		bundle := s.engine.MapRewards(models.SessionScores{Imprint: tt.imprint}, models.SessionText, 0, 1.0)
		s.Equal(tt.tier, bundle.Tier, "imprint %d", tt.imprint)
		s.Require().NotEmpty(bundle.EffectSpecs, "imprint %d", tt.imprint)
		s.Equal(tt.effectName, bundle.EffectSpecs[0].Name, "imprint %d", tt.imprint)
	}
}

func (s *ScoringSuite) TestMapRewards_BelowFortyGrantsNothing() {
	bundle := s.engine.MapRewards(models.SessionScores{Imprint: 39}, models.SessionText, 0, 1.0)

	s.Equal(TierNone, bundle.Tier)
	s.Empty(bundle.EffectSpecs)
	s.Zero(bundle.DreamTokens)
}

func (s *ScoringSuite) TestMapRewards_ForbiddenTierEffect() {
	bundle := s.engine.MapRewards(models.SessionScores{Imprint: 90}, models.SessionText, 0, 1.0)

	s.Require().Len(bundle.EffectSpecs, 1)
	effect := bundle.EffectSpecs[0]
	s.Equal(models.RarityLegendary, effect.Rarity)
	s.Equal(int64(72*60*60*1000), effect.DurationMs)
	s.InDelta(3.0, effect.Magnitudes["xpMultiplier"], 1e-9)
	s.InDelta(100.0, effect.Magnitudes["dreamClarity"], 1e-9)
	s.NotEmpty(effect.Source)
}

func (s *ScoringSuite) TestMapRewards_ClimaxBonusTiers() {
	transcendent := s.engine.MapRewards(models.SessionScores{Climax: 95}, models.SessionText, 0, 1.0)
	s.Require().Len(transcendent.EffectSpecs, 1)
	s.Equal("Transcendent Climax", transcendent.EffectSpecs[0].Name)

	euphoric := s.engine.MapRewards(models.SessionScores{Climax: 94}, models.SessionText, 0, 1.0)
	s.Require().Len(euphoric.EffectSpecs, 1)
	s.Equal("Euphoric Peak", euphoric.EffectSpecs[0].Name)

	none := s.engine.MapRewards(models.SessionScores{Climax: 79}, models.SessionText, 0, 1.0)
	s.Empty(none.EffectSpecs)
}

func (s *ScoringSuite) TestMapRewards_BondAndEmotionBonuses() {
	soul := s.engine.MapRewards(models.SessionScores{CompanionBond: 90}, models.SessionText, 0, 1.0)
	s.Require().Len(soul.EffectSpecs, 1)
	s.Equal("Companion Soul Bond", soul.EffectSpecs[0].Name)

	deep := s.engine.MapRewards(models.SessionScores{CompanionBond: 75}, models.SessionText, 0, 1.0)
	s.Require().Len(deep.EffectSpecs, 1)
	s.Equal("Deep Companion Connection", deep.EffectSpecs[0].Name)

	mastery := s.engine.MapRewards(models.SessionScores{Emotion: 90}, models.SessionText, 0, 1.0)
	s.Require().Len(mastery.EffectSpecs, 1)
	s.Equal("Emotion Mastery", mastery.EffectSpecs[0].Name)
}

func (s *ScoringSuite) TestMapRewards_StacksIndependentBonuses() {
	bundle := s.engine.MapRewards(models.SessionScores{
		Imprint:       92,
		Climax:        96,
		CompanionBond: 91,
		Emotion:       95,
	}, models.SessionText, 0, 1.0)

	s.Equal(TierForbidden, bundle.Tier)
	names := make([]string, 0, len(bundle.EffectSpecs))
	for _, e := range bundle.EffectSpecs {
		names = append(names, e.Name)
	}
	s.Equal([]string{"Forbidden Lucidity", "Transcendent Climax", "Companion Soul Bond", "Emotion Mastery"}, names)
}

func (s *ScoringSuite) TestMapRewards_DreamTokens() {
	s.Zero(s.engine.MapRewards(models.SessionScores{Imprint: 84}, models.SessionText, 0, 1.0).DreamTokens)
	s.Equal(3, s.engine.MapRewards(models.SessionScores{Imprint: 85}, models.SessionText, 0, 1.0).DreamTokens)
	s.Equal(4, s.engine.MapRewards(models.SessionScores{Imprint: 100}, models.SessionText, 0, 1.0).DreamTokens)
}

func TestCountContained(t *testing.T) {
	assert.Equal(t, 2, countContained("warm touch warm touch", []string{"warm", "touch", "cold"}))
	assert.Equal(t, 0, countContained("", []string{"warm"}))
}
