package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Abraxas-365/sift/pkg/errx"
)

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) error
}

// BcryptPasswordService implements PasswordService with bcrypt.
type BcryptPasswordService struct {
	cost int
}

var _ PasswordService = (*BcryptPasswordService)(nil)

func NewBcryptPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

func (s *BcryptPasswordService) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hashed), nil
}

func (s *BcryptPasswordService) Verify(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errx.Wrap(err, "invalid credentials", errx.TypeAuthentication)
	}
	return nil
}
