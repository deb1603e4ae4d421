package auth

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_HashedPasswordsVerify(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every password verifies against its own hash", prop.ForAll(
		func(password string) bool {
			digest, err := HashPassword(password)
			if err != nil {
				t.Logf("Failed to hash password: %v", err)
				return false
			}

			// Salted: digest must never equal the plaintext
			if digest == password {
				return false
			}

			return CheckPassword(password, digest)
		},
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{1,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_WrongPasswordsFailVerification(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a different password does not verify", prop.ForAll(
		func(password string, other string) bool {
			if password == other {
				return true
			}

			digest, err := HashPassword(password)
			if err != nil {
				return false
			}

			return !CheckPassword(other, digest)
		},
		gen.RegexMatch(`[A-Za-z0-9]{8,20}`),
		gen.RegexMatch(`[A-Za-z0-9]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SaltedHashesDiffer(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("two hashes of the same password differ yet both verify", prop.ForAll(
		func(password string) bool {
			first, err := HashPassword(password)
			if err != nil {
				return false
			}
			second, err := HashPassword(password)
			if err != nil {
				return false
			}

			if first == second {
				return false
			}

			return CheckPassword(password, first) && CheckPassword(password, second)
		},
		gen.RegexMatch(`[A-Za-z0-9]{8,16}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Malformed digests fail closed instead of panicking
func TestCheckPassword_MalformedDigest(t *testing.T) {
	malformed := []string{"", "not-a-bcrypt-hash", "$2a$garbage", "plaintext"}

	for _, digest := range malformed {
		if CheckPassword("anything", digest) {
			t.Errorf("CheckPassword accepted malformed digest %q", digest)
		}
	}
}
