// Пакет psswd хеширует и сравнивает пароли через bcrypt. Обычные юзеры входят
// одним номером whatsapp, так что единственный потребитель - пара супер-админа.
package psswd

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHash пустая строковая обертка, реализующая service.PasswordHasher.
// Состояния нет: bcrypt сам хранит соль в хеше.
type PasswordHash string

func (p PasswordHash) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %s", err.Error())
	}
	return string(bytes), nil
}

func (p PasswordHash) ComparePassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
