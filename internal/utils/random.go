package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

var firstNames = []string{
	"Alex", "Sam", "Jordan", "Morgan", "Casey", "Riley", "Taylor", "Jamie",
	"Quinn", "Avery", "Dana", "Robin", "Drew", "Logan", "Charlie", "Skyler",
}
var lastNames = []string{
	"Smith", "Garcia", "Miller", "Chen", "Patel", "Novak", "Silva", "Kim",
	"Rossi", "Dubois", "Weber", "Larsen", "Costa", "Moreau", "Singh", "Berg",
}

func GenerateRandomParticipantName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var campaignAdjectives = []string{
	"Lost", "Forgotten", "Sunken", "Cursed", "Shattered", "Gilded", "Hollow", "Frozen",
}
var campaignNouns = []string{
	"Mines", "Crypt", "Citadel", "Vale", "Archive", "Throne", "Labyrinth", "Isles",
}

func GenerateRandomPollTitle() string {
	return fmt.Sprintf("The %s %s",
		campaignAdjectives[rand.Intn(len(campaignAdjectives))],
		campaignNouns[rand.Intn(len(campaignNouns))])
}

var digits = "0123456789"

func GenerateEmailFromName(name string, emailDomainName string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + emailDomainName
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
