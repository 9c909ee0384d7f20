package gamemaster

import (
	"cartographers/game"
	"cartographers/utils"

	"golang.org/x/exp/rand"
)

// NewGame creates a game for player. All randomness comes from seed, so the same seed
// always yields the same goals and decks.
func NewGame(seed uint64, player Player) GameState {
	r := rand.New(rand.NewSource(seed))

	return GameState{
		Goals:        shuffledGoals(r),
		SeasonSetups: createSeasonSetups(r),
		PlayerStates: []PlayerGameState{{Player: player, MoveHistory: []game.AnyMove{}}},
	}
}

// shuffledGoals draws one goal per category and shuffles their order.
func shuffledGoals(r *rand.Rand) []game.Goal {
	goals := make([]game.Goal, 0, game.CATEGORY_GOALS)
	for _, category := range game.GoalCategories {
		options := game.GoalsByCategory(category)
		goals = append(goals, options[r.Intn(len(options))])
	}
	return utils.Shuffled(goals, r.Shuffle)
}

// createSeasonSetups deals one deck per season. Each deck is a shuffle of the landscape
// cards, the season's monster and hero, and the special cards the previous season did
// not reach.
func createSeasonSetups(r *rand.Rand) []SeasonSetup {
	monsters := utils.Shuffled(game.MonsterCards, r.Shuffle)
	heroes := utils.Shuffled(game.HeroCards, r.Shuffle)

	setups := make([]SeasonSetup, 0, len(game.Seasons))
	var carried []game.LandscapeCard
	for i, season := range game.Seasons {
		cards := append([]game.LandscapeCard(nil), game.LandscapeCards...)
		if i < len(monsters) {
			cards = append(cards, monsters[i])
		}
		if i < len(heroes) {
			cards = append(cards, heroes[i])
		}
		full := utils.Shuffled(append(cards, carried...), r.Shuffle)

		deck := playedCardsOfSeason(full, season)
		carried = nil
		for _, card := range full[len(deck):] {
			if card.IsSpecial() {
				carried = append(carried, card)
			}
		}

		setups = append(setups, SeasonSetup{
			Season:                season,
			CardDeck:              deck,
			RemainingSpecialCards: carried,
		})
	}
	return setups
}

// playedCardsOfSeason cuts cards at the first prefix whose time value reaches the season duration.
func playedCardsOfSeason(cards []game.LandscapeCard, season game.Season) []game.LandscapeCard {
	time := 0
	for i, card := range cards {
		if time >= season.Duration {
			return cards[:i:i]
		}
		time += card.TimeValue
	}
	return cards
}
