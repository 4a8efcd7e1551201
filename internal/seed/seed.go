// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DemoAPIKey is the raw api key of the well-known demo user. The bundled
// frontend sends it by default.
const DemoAPIKey = "test"

// Options configuration for the seeder
type Options struct {
	NumUsers  int
	NumTweets int
}

// Seeder populates the database with demo data.
type Seeder struct {
	db     *gorm.DB
	digest func(rawKey string) string
}

// New creates a Seeder. digest must be the same api-key digest function the
// server uses, otherwise seeded keys will not authenticate.
func New(db *gorm.DB, digest func(string) string) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, digest: digest}
}

// ClearAll removes all seeded data. PostgreSQL only.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE likes, follows, media, tweets, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Run populates the database with opts.NumUsers users (plus the demo user)
// and opts.NumTweets tweets, wired together with random follows and likes.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d tweets...", opts.NumUsers, opts.NumTweets)

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	tweets, err := s.createTweets(users, opts.NumTweets)
	if err != nil {
		return fmt.Errorf("failed to create tweets: %w", err)
	}
	log.Printf("created %d tweets", len(tweets))

	if err := s.createFollows(users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	if err := s.createLikes(users, tweets); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

func (s *Seeder) createUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count+1)

	// Well-known demo user first so its api key is stable across reseeds.
	demo := models.User{
		Login:        "test",
		Name:         "Test",
		Surname:      "User",
		APIKeyDigest: s.digest(DemoAPIKey),
	}
	if err := s.db.Create(&demo).Error; err != nil {
		return nil, err
	}
	users = append(users, demo)

	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		rawKey := uuid.NewString()
		user := models.User{
			Login:        fmt.Sprintf("%s%d", strings.ToLower(first), i),
			Name:         first,
			Surname:      last,
			APIKeyDigest: s.digest(rawKey),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createTweets(users []models.User, count int) ([]models.Tweet, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	tweets := make([]models.Tweet, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		tweet := models.Tweet{
			UserID:    author.ID,
			Content:   gofakeit.Sentence(8 + r.Intn(10)),
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(&tweet).Error; err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}
	return tweets, nil
}

func (s *Seeder) createFollows(users []models.User) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	seen := map[[2]uint]bool{}
	target := len(users) * 2
	for i := 0; i < target; i++ {
		follower := users[r.Intn(len(users))]
		followed := users[r.Intn(len(users))]
		if follower.ID == followed.ID {
			continue
		}
		pair := [2]uint{follower.ID, followed.ID}
		if seen[pair] {
			continue
		}
		seen[pair] = true

		follow := models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
		if err := s.db.Create(&follow).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) createLikes(users []models.User, tweets []models.Tweet) error {
	if len(tweets) == 0 {
		return nil
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	seen := map[[2]uint]bool{}
	target := len(tweets) * 3
	for i := 0; i < target; i++ {
		user := users[r.Intn(len(users))]
		tweet := tweets[r.Intn(len(tweets))]
		pair := [2]uint{user.ID, tweet.ID}
		if seen[pair] {
			continue
		}
		seen[pair] = true

		like := models.Like{UserID: user.ID, TweetID: tweet.ID}
		if err := s.db.Create(&like).Error; err != nil {
			return err
		}
	}
	return nil
}
