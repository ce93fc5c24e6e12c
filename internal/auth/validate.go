package auth

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/hitoshi/authgate/internal/model"
)

// パスワード強度ポリシー。
const (
	minPasswordLength = 8
	// bcryptは先頭72バイトのみを評価するため、それ以上は受け付けない
	maxPasswordLength = 72
)

// passwordSpecialChars はポリシー上「記号」とみなす文字の集合。
const passwordSpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?~` + "`"

// validateEmail はメールアドレスの構文を検証する。
// 正規化済みの入力を前提とする。
func validateEmail(email string) *model.APIError {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return model.NewInvalidInputError("メールアドレスの形式が正しくありません")
	}
	// 表示名付き（"name <a@b>"形式）やドメイン部のないアドレスは受け付けない
	at := strings.LastIndex(email, "@")
	if at < 1 || !strings.Contains(email[at+1:], ".") {
		return model.NewInvalidInputError("メールアドレスの形式が正しくありません")
	}
	return nil
}

// validatePassword はパスワード強度ポリシーを検証する。
// 8文字以上72バイト以下で、小文字・大文字・数字・記号をそれぞれ1文字以上含むこと。
func validatePassword(password string) *model.APIError {
	if len(password) < minPasswordLength {
		return model.NewInvalidInputError("パスワードは8文字以上にしてください")
	}
	if len(password) > maxPasswordLength {
		return model.NewInvalidInputError("パスワードは72文字以内にしてください")
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return model.NewInvalidInputError("パスワードには小文字・大文字・数字・記号をそれぞれ1文字以上含めてください")
	}

	return nil
}
