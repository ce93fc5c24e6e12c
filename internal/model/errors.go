package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, ratelimit, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeTokenMissing       = "TOKEN_MISSING"
	ErrCodeTokenMalformed     = "TOKEN_MALFORMED"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

// invalidCredentialsMessage は未登録メールとパスワード誤りで完全に同一のメッセージ。
// レスポンスの差異からアカウントの存在を推測されること（アカウント列挙）を防ぐ。
const invalidCredentialsMessage = "メールアドレスまたはパスワードが正しくありません。"

// NewInvalidInputError は入力不備エラーを生成する。
func NewInvalidInputError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidInput,
		Message:  fmt.Sprintf("入力内容に誤りがあります: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メール未登録とパスワード不一致のどちらの場合も同一のエラーを返すこと。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  invalidCredentialsMessage,
		Category: "auth",
		Action:   "メールアドレスとパスワードを確認してください。",
	}
}

// NewAlreadyExistsError は重複登録エラーを生成する。
// 事前検索で検出した場合と、ストアの一意制約違反（同時登録の競合）の場合の両方で使用する。
func NewAlreadyExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeAlreadyExists,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "validation",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewRateLimitedError は試行回数超過エラーを生成する。
// パスワード誤りとは区別されるシグナルとして返す。
func NewRateLimitedError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "試行回数が上限に達しました。",
		Category: "ratelimit",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewTokenMissingError はトークン未提示エラーを生成する。
func NewTokenMissingError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenMissing,
		Message:  "認証トークンが提示されていません。",
		Category: "auth",
		Action:   "ログインして取得したトークンをAuthorizationヘッダーで送信してください。",
	}
}

// NewTokenMalformedError はトークン不正エラーを生成する。
// パース不能または署名検証失敗の場合に使用する。
func NewTokenMalformedError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenMalformed,
		Message:  "認証トークンが不正です。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewTokenExpiredError はトークン期限切れエラーを生成する。
func NewTokenExpiredError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenExpired,
		Message:  "認証トークンの有効期限が切れています。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewStorageUnavailableError はストレージ障害エラーを生成する。
// 内部詳細はログのみに記録し、呼び出し元には一般的なメッセージを返す。
func NewStorageUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeStorageUnavailable,
		Message:  "サービスが一時的に利用できません。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
