package shop

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"

	models "storefront/internal/models"
	"storefront/internal/store"
)

// RegisterForm — поля формы регистрации продавца
type RegisterForm struct {
	Email               string
	Password            string
	ConfirmPassword     string
	BusinessName        string
	BusinessDescription string
}

// Register создаёт продавца и пустой список его товаров. В сессию не
// входит: после регистрации нужен отдельный Login.
func (a *App) Register(ctx context.Context, f RegisterForm) (models.User, error) {
	email := models.NormalizeEmail(f.Email)
	switch {
	case !models.IsGmail(email):
		return models.User{}, a.fail(newError(ErrValidation, "Please use a valid Gmail address"))
	case f.Password == "":
		return models.User{}, a.fail(newError(ErrValidation, "Password is required"))
	case f.Password != f.ConfirmPassword:
		return models.User{}, a.fail(newError(ErrValidation, "Passwords do not match"))
	case strings.TrimSpace(f.BusinessName) == "":
		return models.User{}, a.fail(newError(ErrValidation, "Business name is required"))
	}

	pw := f.Password
	if a.hashPasswords {
		var err error
		if pw, err = models.HashPassword(f.Password); err != nil {
			return models.User{}, err
		}
	}
	u := models.User{
		ID:                  a.newUserID(),
		Email:               email,
		Password:            pw,
		PasswordHashed:      a.hashPasswords,
		BusinessName:        strings.TrimSpace(f.BusinessName),
		BusinessDescription: strings.TrimSpace(f.BusinessDescription),
		CreatedAt:           a.now().UTC(),
	}

	// проверка дубля и обе записи под одной блокировкой хранилища
	err := a.records.Update(ctx, func(tx *store.Records) error {
		users, err := tx.Users(ctx)
		if err != nil {
			return err
		}
		for _, other := range users {
			if models.NormalizeEmail(other.Email) == email {
				return a.fail(newError(ErrValidation, "An account with this email already exists"))
			}
		}
		sp, err := tx.SellerProducts(ctx)
		if err != nil {
			return err
		}
		if err := tx.SaveUsers(ctx, append(users, u)); err != nil {
			return err
		}
		sp[u.ID] = []models.Product{}
		if err := tx.SaveSellerProducts(ctx, sp); err != nil {
			// откат: пользователь без списка товаров не нужен
			if rerr := tx.SaveUsers(ctx, users); rerr != nil {
				log.Printf("shop: rollback of user %s failed: %v", u.Email, rerr)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	a.notify(SeveritySuccess, "Registration successful! Please log in.")
	return u, nil
}

// Login: точное совпадение email и пароля, иначе AuthError
func (a *App) Login(ctx context.Context, email, password string) (models.User, error) {
	users, err := a.records.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	email = models.NormalizeEmail(email)
	for _, u := range users {
		if models.NormalizeEmail(u.Email) != email || !passwordMatches(u, password) {
			continue
		}
		if err := a.records.SaveSession(ctx, u); err != nil {
			return models.User{}, err
		}
		a.user = &u
		a.notify(SeveritySuccess, "Welcome back, "+u.BusinessName+"!")
		return u, nil
	}
	return models.User{}, a.fail(newError(ErrAuth, "invalid credentials"))
}

// Logout чистит сессию; корзину не трогает
func (a *App) Logout(ctx context.Context) error {
	if err := a.records.ClearSession(ctx); err != nil {
		return err
	}
	a.user = nil
	a.notify(SeverityInfo, "Logged out")
	return nil
}

// passwordMatches: способ хранения записан в самом пользователе
func passwordMatches(u models.User, given string) bool {
	if u.PasswordHashed {
		return models.CheckPassword(u.Password, given)
	}
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(given)) == 1
}
