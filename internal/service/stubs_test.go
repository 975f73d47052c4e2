package service

import (
	"context"

	"fanvault/internal/models"
	"fanvault/internal/payments"
	"fanvault/internal/repository"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint, string) (*models.Post, error)
	listFn       func(context.Context, int, int, string) ([]*models.Post, error)
	deleteFn     func(context.Context, uint) error
	toggleLikeFn func(context.Context, string, uint) (*repository.ToggleLikeResult, error)
	isLikedFn    func(context.Context, string, uint) (bool, error)
	countLikesFn func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint, viewerID string) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, viewerID string) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, viewerID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID string, postID uint) (*repository.ToggleLikeResult, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID string, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) CountLikes(ctx context.Context, postID uint) (int64, error) {
	return s.countLikesFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint, _ string) (*models.Post, error) { return &models.Post{}, nil },
		listFn:    func(_ context.Context, _, _ int, _ string) ([]*models.Post, error) { return nil, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _ string, _ uint) (*repository.ToggleLikeResult, error) {
			return &repository.ToggleLikeResult{}, nil
		},
		isLikedFn:    func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		countLikesFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	setSubscribedFn func(context.Context, string, bool) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SetSubscribed(ctx context.Context, id string, subscribed bool) error {
	return s.setSubscribedFn(ctx, id, subscribed)
}

// userRepoWith returns a stub whose GetByID serves the given users by id.
func userRepoWith(users ...*models.User) *userRepoStub {
	byID := make(map[string]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.User, error) {
			if u, ok := byID[id]; ok {
				return u, nil
			}
			return nil, models.NewNotFoundError("User", id)
		},
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			for _, u := range byID {
				if u.Email == email {
					return u, nil
				}
			}
			return nil, models.NewNotFoundError("User", email)
		},
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		setSubscribedFn: func(_ context.Context, _ string, _ bool) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	listByPostFn  func(context.Context, uint) ([]*models.Comment, error)
	countByPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

// productRepoStub is a stub for repository.ProductRepository.
type productRepoStub struct {
	createFn   func(context.Context, *models.Product) error
	getByIDFn  func(context.Context, uint) (*models.Product, error)
	listAllFn  func(context.Context) ([]*models.Product, error)
	listLiveFn func(context.Context) ([]*models.Product, error)
	updateFn   func(context.Context, *models.Product) error
}

func (s *productRepoStub) Create(ctx context.Context, product *models.Product) error {
	return s.createFn(ctx, product)
}
func (s *productRepoStub) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.getByIDFn(ctx, id)
}
func (s *productRepoStub) ListAll(ctx context.Context) ([]*models.Product, error) {
	return s.listAllFn(ctx)
}
func (s *productRepoStub) ListLive(ctx context.Context) ([]*models.Product, error) {
	return s.listLiveFn(ctx)
}
func (s *productRepoStub) Update(ctx context.Context, product *models.Product) error {
	return s.updateFn(ctx, product)
}

// orderRepoStub is a stub for repository.OrderRepository.
type orderRepoStub struct {
	createFn         func(context.Context, *models.Order) error
	getBySessionIDFn func(context.Context, string) (*models.Order, error)
	listByUserFn     func(context.Context, string) ([]*models.Order, error)
}

func (s *orderRepoStub) Create(ctx context.Context, order *models.Order) error {
	return s.createFn(ctx, order)
}
func (s *orderRepoStub) GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	return s.getBySessionIDFn(ctx, sessionID)
}
func (s *orderRepoStub) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	return s.listByUserFn(ctx, userID)
}

// subscriptionRepoStub is a stub for repository.SubscriptionRepository.
type subscriptionRepoStub struct {
	upsertFn          func(context.Context, *models.Subscription) error
	getByUserFn       func(context.Context, string) (*models.Subscription, error)
	getByProviderIDFn func(context.Context, string) (*models.Subscription, error)
}

func (s *subscriptionRepoStub) Upsert(ctx context.Context, sub *models.Subscription) error {
	return s.upsertFn(ctx, sub)
}
func (s *subscriptionRepoStub) GetByUser(ctx context.Context, userID string) (*models.Subscription, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *subscriptionRepoStub) GetByProviderID(ctx context.Context, providerID string) (*models.Subscription, error) {
	return s.getByProviderIDFn(ctx, providerID)
}

// providerStub is a stub for payments.Provider.
type providerStub struct {
	productCheckoutFn      func(context.Context, payments.ProductCheckout) (*payments.Session, error)
	subscriptionCheckoutFn func(context.Context, payments.SubscriptionCheckout) (*payments.Session, error)
	parseWebhookFn         func([]byte, string) (*payments.Event, error)
}

func (s *providerStub) CreateProductCheckout(ctx context.Context, in payments.ProductCheckout) (*payments.Session, error) {
	return s.productCheckoutFn(ctx, in)
}
func (s *providerStub) CreateSubscriptionCheckout(ctx context.Context, in payments.SubscriptionCheckout) (*payments.Session, error) {
	return s.subscriptionCheckoutFn(ctx, in)
}
func (s *providerStub) ParseWebhook(payload []byte, signature string) (*payments.Event, error) {
	return s.parseWebhookFn(payload, signature)
}
