package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"audimew-storefront/internal/format"
	"audimew-storefront/internal/model"
	"audimew-storefront/internal/session"
)

// The error texts are shown to the shopper as-is.
var (
	ErrDeleted       = errors.New("삭제된 상품입니다.")
	ErrSoldOut       = errors.New("SoldOut 상품입니다.")
	ErrLoginRequired = errors.New("로그인 후 이용해 주십시오.")
	ErrInvalidPrice  = errors.New("상품 가격 정보가 올바르지 않습니다.")
)

// CheckPurchasable rejects deleted and sold-out products.
func CheckPurchasable(d model.ProductDetail) error {
	if d.ProductDTO.Deleted {
		return ErrDeleted
	}
	if d.ProductDTO.Pstock <= 0 {
		return ErrSoldOut
	}
	return nil
}

// Quantity is the item count picked on the detail page. It never drops
// below one.
type Quantity int

// NewQuantity clamps n to at least one.
func NewQuantity(n int) Quantity {
	return Quantity(max(n, 1))
}

// Step applies a stepper button. Unknown steps leave q as is.
func (q Quantity) Step(step string) Quantity {
	switch step {
	case StepIncrement:
		return q.Increment()
	case StepDecrement:
		return q.Decrement()
	}
	return NewQuantity(int(q))
}

// Stepper buttons of the quantity picker.
const (
	StepIncrement = "increment"
	StepDecrement = "decrement"
)

func (q Quantity) Increment() Quantity { return q + 1 }

func (q Quantity) Decrement() Quantity {
	if q > 1 {
		return q - 1
	}
	return 1
}

// Cart is the part of the storefront API the shop needs.
type Cart interface {
	AddCart(ctx context.Context, token, userID string, pno int64, qty int) (string, error)
}

// Service runs cart and checkout actions on behalf of a session.
type Service struct {
	cart Cart
	log  *zap.Logger
}

// NewService creates a shop service.
func NewService(cart Cart, log *zap.Logger) *Service {
	return &Service{cart: cart, log: log}
}

// AddToCart puts qty items of product pno into the member's cart and returns
// the message of the storefront API.
func (s *Service) AddToCart(ctx context.Context, sess *session.Session, pno int64, qty Quantity) (string, error) {
	user := sess.User()
	if user == nil || !sess.LoggedIn() {
		return "", ErrLoginRequired
	}

	msg, err := s.cart.AddCart(ctx, sess.AccessToken(), user.UserID, pno, int(NewQuantity(int(qty))))
	if err != nil {
		s.log.Error("failed to add product to cart",
			zap.String("user", user.UserID), zap.Int64("pno", pno), zap.Error(err))
		return "", fmt.Errorf("add to cart: %w", err)
	}
	return msg, nil
}

// OrderLine is one line of an order handed to the payment page.
type OrderLine struct {
	CartNo     string        `json:"cartNo"`
	UserDTO    model.User    `json:"userDTO"`
	ProductDTO model.Product `json:"productDTO"`
	NumOfItem  int           `json:"numofItem"`
}

// Order is a checkout that has not been paid yet.
type Order struct {
	Lines             []OrderLine `json:"lines"`
	TotalPrice        int64       `json:"totalPrice"`
	TotalPriceDisplay string      `json:"totalPriceDisplay"`
	Direct            bool        `json:"direct"`
	PaymentURL        string      `json:"paymentUrl"`
}

// DirectPurchase builds a single-line order for "buy now". The line gets a
// temporary cart number that is never stored upstream.
func DirectPurchase(sess *session.Session, d model.ProductDetail, qty Quantity, now time.Time) (*Order, error) {
	user := sess.User()
	if user == nil || !sess.LoggedIn() {
		return nil, ErrLoginRequired
	}

	price, err := format.PriceDigits(string(d.ProductDTO.Price))
	if err != nil {
		return nil, ErrInvalidPrice
	}

	n := NewQuantity(int(qty))
	lines := []OrderLine{{
		CartNo:     "direct_" + strconv.FormatInt(now.UnixMilli(), 10),
		UserDTO:    *user,
		ProductDTO: d.ProductDTO,
		NumOfItem:  int(n),
	}}
	total := price * int64(n)

	cartData, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order lines: %w", err)
	}
	q := url.Values{}
	q.Set("totalPrice", format.Number(total))
	q.Set("cartData", string(cartData))
	q.Set("direct", "true")

	return &Order{
		Lines:             lines,
		TotalPrice:        total,
		TotalPriceDisplay: format.Number(total),
		Direct:            true,
		PaymentURL:        "/shopping/payment?" + q.Encode(),
	}, nil
}
