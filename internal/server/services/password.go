package services

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize      = 32
	argonTime     = 1
	argonMemory   = 64 * 1024
	argonThreads  = 4
	argonKeyBytes = 32
)

func newSalt() []byte {
	return common.GenerateRandByteArray(saltSize)
}

func hashPassword(password string, salt []byte) []byte {
	pw := []byte(password)
	defer common.WipeByteArray(pw)
	return argon2.IDKey(pw, salt, argonTime, argonMemory, argonThreads, argonKeyBytes)
}

func checkPassword(hash []byte, password string, salt []byte) bool {
	return subtle.ConstantTimeCompare(hash, hashPassword(password, salt)) == 1
}
