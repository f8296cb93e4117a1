package factories

import (
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/surplussim/internal/models"
)

var (
	usernameAdjectives = []string{
		"happy", "brave", "quiet", "lucky", "swift", "gentle", "clever", "sunny", "frugal", "hungry",
		"mellow", "bright", "cosy", "bold", "thrifty", "eager", "calm", "witty", "zesty", "nimble",
	}
	usernameNouns = []string{
		"otter", "badger", "crumpet", "falcon", "pickle", "walrus", "muffin", "heron", "panda", "scone",
		"fox", "pretzel", "robin", "toast", "lynx", "bagel", "hedgehog", "kipper", "wren", "dumpling",
	}
	emailProviders = []string{"gmail", "yahoo", "outlook", "hotmail", "icloud", "protonmail", "aol"}
)

type UserFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewUserFactory(rng *rand.Rand) *UserFactory {
	return &UserFactory{
		fake: faker.NewWithSeed(rand.NewSource(rng.Int63())),
		rng:  rng,
	}
}

// CreateUser builds a customer with no collection history yet: streak and
// last collection are derived later from reservations.
func (uf *UserFactory) CreateUser() models.User {
	username := capitalize(uf.fake.RandomStringElement(usernameAdjectives)) +
		capitalize(uf.fake.RandomStringElement(usernameNouns))

	name := strings.ToLower(strings.ReplaceAll(uf.fake.Person().FirstName(), " ", ""))
	provider := uf.fake.RandomStringElement(emailProviders)

	return models.User{
		ID:       models.NewID(uf.rng),
		Username: username,
		Email:    name + "@" + provider + ".com",
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
