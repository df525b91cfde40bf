// internal/i18n/i18n.go
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var instance *I18n
var once sync.Once

// English defaults compiled in so a missing locale directory never leaves
// responses keyed instead of worded.
var enDefaults = map[string]string{
	KeySuccess: "Success",
	KeyError:   "Something went wrong",

	KeyAuthRequired:           "Authentication required",
	KeyAuthInvalidToken:       "Invalid authentication token",
	KeyAuthTokenExpired:       "Your session has expired, please sign in again",
	KeyAuthInvalidCredentials: "Invalid email or password",
	KeyAuthUserExists:         "An account with these details already exists",
	KeyAuthLoginSuccess:       "Signed in successfully",
	KeyAuthLogoutSuccess:      "Signed out successfully",
	KeyAuthRegisterSuccess:    "Account created successfully",
	KeyAuthPasswordReset:      "If the email exists, a reset link has been sent",

	KeyUserNotFound: "User not found",

	KeyAdminAccessDenied:         "Admin access required",
	KeyAdminNotificationNotFound: "Notification not found",
	KeyAdminSettingNotFound:      "Setting not found",

	KeyProductCreated:  "Product created",
	KeyProductUpdated:  "Product updated",
	KeyProductDeleted:  "Product deleted",
	KeyProductNotFound: "Product not found",

	KeyCategoryCreated:  "Category created",
	KeyCategoryDeleted:  "Category deleted",
	KeyCategoryNotFound: "Category not found",
	KeyCategoryExists:   "A category with this name already exists",

	KeyCartItemAdded:   "Added to cart",
	KeyCartItemRemoved: "Removed from cart",
	KeyCartUpdated:     "Cart updated",
	KeyCartCleared:     "Cart cleared",
	KeyCartEmpty:       "Your cart is empty",

	KeyCheckoutStarted:       "Checkout started",
	KeyCheckoutDetailsSaved:  "Delivery details saved",
	KeyCheckoutInvalidStep:   "That action is not available at this checkout step",
	KeyCheckoutUploadFailed:  "Failed to upload payment proof, please try again",
	KeyCheckoutOrderPlaced:   "Order placed successfully",
	KeyCheckoutNotInProgress: "No checkout in progress",

	KeyOrderNotFound:      "Order not found",
	KeyOrderStatusUpdated: "Order status updated",
	KeyOrderInvalidStatus: "Unknown order status",

	KeyFileUploadSuccess: "File uploaded successfully",
	KeyFileUploadFailed:  "File upload failed",

	KeyValidationInvalid: "Invalid %s",
}

func Initialize() error {
	once.Do(func() {
		instance = &I18n{
			translations: map[string]map[string]string{"en": enDefaults},
			defaultLang:  "en",
		}
		// Extra locales are optional overlays
		instance.loadTranslations("./internal/i18n/locales")
	})
	return nil
}

func (i *I18n) loadTranslations(localesPath string) {
	entries, err := os.ReadDir(localesPath)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")

		data, err := os.ReadFile(filepath.Join(localesPath, entry.Name()))
		if err != nil {
			continue
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			continue
		}

		i.mu.Lock()
		if i.translations[lang] == nil {
			i.translations[lang] = translations
		} else {
			for k, v := range translations {
				i.translations[lang][k] = v
			}
		}
		i.mu.Unlock()
	}
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if translations, exists := i.translations[lang]; exists {
		if text, exists := translations[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(text, args...)
			}
			return text
		}
	}

	// Fallback to default language
	if lang != i.defaultLang {
		if translations, exists := i.translations[i.defaultLang]; exists {
			if text, exists := translations[key]; exists {
				if len(args) > 0 {
					return fmt.Sprintf(text, args...)
				}
				return text
			}
		}
	}

	return key
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if instance != nil {
		return instance.T(lang, key, args...)
	}
	return key
}
