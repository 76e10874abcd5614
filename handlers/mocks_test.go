package handlers

import (
	"mime/multipart"

	"foodfusion-backend/payments"
)

type mockStorage struct {
	UploadFoodImageFn  func(file multipart.File, filename, contentType string) (string, error)
	UploadComboImageFn func(file multipart.File, filename, contentType string) (string, error)
	DeleteFileFn       func(objectPath string) error
	DeleteFileCalls    []string
	UploadCallCount    int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteFileCalls: []string{},
	}
}

func (m *mockStorage) UploadFoodImage(file multipart.File, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadFoodImageFn != nil {
		return m.UploadFoodImageFn(file, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/foods/test_image.jpg", nil
}

func (m *mockStorage) UploadComboImage(file multipart.File, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadComboImageFn != nil {
		return m.UploadComboImageFn(file, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/combos/test_image.jpg", nil
}

func (m *mockStorage) DeleteFile(objectPath string) error {
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(objectPath)
	}
	return nil
}

type mockCheckout struct {
	CreateCheckoutSessionFn func(items []payments.CheckoutItem, successURL, cancelURL string) (string, error)
	Sessions                [][]payments.CheckoutItem
}

func newMockCheckout() *mockCheckout {
	return &mockCheckout{}
}

func (m *mockCheckout) CreateCheckoutSession(items []payments.CheckoutItem, successURL, cancelURL string) (string, error) {
	m.Sessions = append(m.Sessions, items)
	if m.CreateCheckoutSessionFn != nil {
		return m.CreateCheckoutSessionFn(items, successURL, cancelURL)
	}
	return "https://checkout.stripe.com/test-session", nil
}
