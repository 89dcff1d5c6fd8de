package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/you/accountsvc/domain"
)

// CodeGeneratorImpl implements domain.CodeGenerator
type CodeGeneratorImpl struct {
	codeLength int
	codeTTL    time.Duration
	resetTTL   time.Duration
}

// NewCodeGenerator creates a new code generator. codeLength is the number of
// digits in a verification code; codeTTL and resetTTL bound the lifetime of
// codes and reset tokens respectively.
func NewCodeGenerator(codeLength int, codeTTL, resetTTL time.Duration) domain.CodeGenerator {
	return &CodeGeneratorImpl{
		codeLength: codeLength,
		codeTTL:    codeTTL,
		resetTTL:   resetTTL,
	}
}

// GenerateVerificationCode implements domain.CodeGenerator. The code is
// uniformly random over the full fixed-digit range, so it never carries a
// leading zero.
func (g *CodeGeneratorImpl) GenerateVerificationCode() (*domain.VerificationCode, error) {
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(g.codeLength-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	return &domain.VerificationCode{
		Code:      n.Add(n, low).String(),
		ExpiresAt: time.Now().Add(g.codeTTL),
	}, nil
}

// GenerateResetToken implements domain.CodeGenerator. The plaintext is
// embedded in the link mailed to the user; only the SHA-256 hash is persisted.
func (g *CodeGeneratorImpl) GenerateResetToken() (*domain.ResetToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	plain := hex.EncodeToString(raw)
	return &domain.ResetToken{
		Plain:     plain,
		Hash:      g.HashResetToken(plain),
		ExpiresAt: time.Now().Add(g.resetTTL),
	}, nil
}

// HashResetToken implements domain.CodeGenerator
func (g *CodeGeneratorImpl) HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
