package shop

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audimew-storefront/internal/model"
	"audimew-storefront/internal/session"
)

type fakeCart struct {
	calls []string
	msg   string
	err   error
}

func (f *fakeCart) AddCart(ctx context.Context, token, userID string, pno int64, qty int) (string, error) {
	f.calls = append(f.calls, token+"|"+userID)
	return f.msg, f.err
}

func loggedIn() *session.Session {
	s := &session.Session{ID: "s1"}
	s.SignIn(model.LoginResult{
		AccessToken: "access",
		User:        model.User{UserID: "kim", UserName: "김철수"},
	})
	return s
}

func TestCheckPurchasable(t *testing.T) {
	testCases := []struct {
		name    string
		product model.Product
		want    error
	}{
		{name: "In stock", product: model.Product{Pno: 1, Pstock: 3}},
		{name: "Deleted wins over sold out", product: model.Product{Pno: 1, Deleted: true}, want: ErrDeleted},
		{name: "Sold out", product: model.Product{Pno: 1, Pstock: 0}, want: ErrSoldOut},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPurchasable(model.ProductDetail{ProductDTO: tc.product})
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestQuantity(t *testing.T) {
	q := NewQuantity(0)
	assert.Equal(t, Quantity(1), q)
	assert.Equal(t, Quantity(1), q.Decrement())
	assert.Equal(t, Quantity(3), q.Increment().Increment())
	assert.Equal(t, Quantity(2), Quantity(3).Decrement())

	assert.Equal(t, Quantity(2), Quantity(1).Step(StepIncrement))
	assert.Equal(t, Quantity(1), Quantity(1).Step(StepDecrement))
	assert.Equal(t, Quantity(1), Quantity(-4).Step(""))
}

func TestService_AddToCart(t *testing.T) {
	cart := &fakeCart{msg: "장바구니에 담았습니다."}
	svc := NewService(cart, zap.NewNop())

	_, err := svc.AddToCart(context.Background(), &session.Session{ID: "anon"}, 7, 1)
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Empty(t, cart.calls)

	msg, err := svc.AddToCart(context.Background(), loggedIn(), 7, 2)
	require.NoError(t, err)
	assert.Equal(t, "장바구니에 담았습니다.", msg)
	assert.Equal(t, []string{"access|kim"}, cart.calls)

	cart.err = errors.New("boom")
	_, err = svc.AddToCart(context.Background(), loggedIn(), 7, 2)
	assert.Error(t, err)
}

func TestDirectPurchase(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	detail := model.ProductDetail{ProductDTO: model.Product{Pno: 7, Pname: "헤드폰", Price: "₩129,000", Pstock: 5}}

	order, err := DirectPurchase(loggedIn(), detail, 2, now)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "direct_1700000000123", order.Lines[0].CartNo)
	assert.Equal(t, 2, order.Lines[0].NumOfItem)
	assert.Equal(t, "kim", order.Lines[0].UserDTO.UserID)
	assert.Equal(t, int64(258000), order.TotalPrice)
	assert.Equal(t, "258,000", order.TotalPriceDisplay)

	u, err := url.Parse(order.PaymentURL)
	require.NoError(t, err)
	assert.Equal(t, "/shopping/payment", u.Path)
	assert.Equal(t, "258,000", u.Query().Get("totalPrice"))
	assert.Equal(t, "true", u.Query().Get("direct"))
	assert.Contains(t, u.Query().Get("cartData"), `"cartNo":"direct_1700000000123"`)
}

func TestDirectPurchase_Rejections(t *testing.T) {
	now := time.Now()
	good := model.ProductDetail{ProductDTO: model.Product{Pno: 7, Price: "10,000원", Pstock: 1}}
	bad := model.ProductDetail{ProductDTO: model.Product{Pno: 7, Price: "가격 문의", Pstock: 1}}

	_, err := DirectPurchase(&session.Session{ID: "anon"}, good, 1, now)
	assert.ErrorIs(t, err, ErrLoginRequired)

	_, err = DirectPurchase(loggedIn(), bad, 1, now)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
