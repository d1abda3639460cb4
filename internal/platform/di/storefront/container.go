// Package storefront wires the storefront + admin service.
// Pure DI: build deps only. No routing branching here.
package storefront

import (
	"context"
	"log"
	"strings"

	usecase "sabordigital/internal/application/usecase"

	adminhandler "sabordigital/internal/adapters/in/http/admin/handler"
	outfs "sabordigital/internal/adapters/out/firestore"
	gcso "sabordigital/internal/adapters/out/gcs"
	"sabordigital/internal/adapters/out/localstore"
	"sabordigital/internal/adapters/out/mail"
	"sabordigital/internal/adapters/out/rediscache"

	cartdom "sabordigital/internal/domain/cart"
	menudom "sabordigital/internal/domain/menu"
	orderdom "sabordigital/internal/domain/order"
	profiledom "sabordigital/internal/domain/profile"

	shared "sabordigital/internal/platform/di/shared"
)

// Container is the storefront DI container.
type Container struct {
	Infra *shared.Infra

	// Usecases
	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	MenuUC     *usecase.MenuUsecase
	OrderUC    *usecase.OrderUsecase
	ThemeUC    *usecase.ThemeUsecase
	ProfileUC  *usecase.ProfileUsecase

	// Admin auth dependency
	ProfileRepo profiledom.Repository

	// Media upload (nil disables POST /admin/menu/images)
	Uploader adminhandler.ImageUploader
}

// NewContainer builds the container on top of shared infra.
//
// Repository selection:
//   - Firestore configured: everything runs on Firestore; Postgres (when
//     present) replaces Firestore as the order store; Redis (when present)
//     fronts the menu catalog.
//   - no Firestore: cart and orders fall back to JSON files so a local
//     run still takes checkouts; catalog/theme/admin stay unconfigured.
func NewContainer(ctx context.Context) (*Container, error) {
	inf, err := shared.NewInfra(ctx)
	if err != nil {
		return nil, err
	}
	return NewContainerWithInfra(inf)
}

func NewContainerWithInfra(inf *shared.Infra) (*Container, error) {
	cont := &Container{Infra: inf}
	cfg := inf.Config

	// ----------------------------
	// Repositories
	// ----------------------------
	var (
		cartRepo  cartdom.Repository
		orderRepo orderdom.Repository
		menuRepo  menudom.Repository
	)

	if inf.Firestore != nil {
		cartRepo = outfs.NewCartRepositoryFS(inf.Firestore)
		menuRepo = outfs.NewMenuRepositoryFS(inf.Firestore)
		orderRepo = outfs.NewOrderRepositoryFS(inf.Firestore)
		cont.ProfileRepo = outfs.NewProfileRepositoryFS(inf.Firestore)

		themeRepo := outfs.NewThemeRepositoryFS(inf.Firestore)
		cont.ThemeUC = usecase.NewThemeUsecase(themeRepo)
	} else {
		cartRepo = localstore.NewCartRepositoryFile(cfg.CartFilePath)
		orderRepo = localstore.NewOrderRepositoryFile(cfg.OrderFilePath)
		log.Printf("[storefront.di] local file mode: catalog/theme/admin endpoints are unconfigured")
	}

	if inf.DB != nil {
		orderRepo = outfs.NewOrderRepositoryPG(inf.DB)
		log.Printf("[storefront.di] orders use the postgres archive")
	}

	if menuRepo != nil && inf.Redis != nil {
		menuRepo = rediscache.NewMenuCache(menuRepo, inf.Redis)
		log.Printf("[storefront.di] menu catalog cached via redis")
	}

	// ----------------------------
	// Usecases
	// ----------------------------
	cont.CartUC = usecase.NewCartUsecase(cartRepo)
	if menuRepo != nil {
		cont.MenuUC = usecase.NewMenuUsecase(menuRepo)
	}
	cont.OrderUC = usecase.NewOrderUsecase(orderRepo)
	if cont.ProfileRepo != nil {
		cont.ProfileUC = usecase.NewProfileUsecase(cont.ProfileRepo)
	}

	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, orderRepo, cfg.DeliveryFeeCents, inf.WhatsAppPhone)
	if n := buildOrderNotifier(inf); n != nil {
		checkoutUC = checkoutUC.WithNotifier(n)
	}
	cont.CheckoutUC = checkoutUC

	// ----------------------------
	// Media upload
	// ----------------------------
	if inf.GCS != nil && strings.TrimSpace(inf.MediaBucket) != "" {
		cont.Uploader = gcso.NewMenuImageRepositoryGCS(inf.GCS, inf.MediaBucket)
	}

	return cont, nil
}

// buildOrderNotifier returns the SendGrid order mailer when fully
// configured, nil otherwise.
func buildOrderNotifier(inf *shared.Infra) usecase.OrderNotifier {
	cfg := inf.Config
	key := strings.TrimSpace(inf.SendGridAPIKey)
	from := strings.TrimSpace(cfg.OrderMailFrom)
	to := strings.TrimSpace(cfg.OrderMailTo)
	if key == "" || from == "" || to == "" {
		log.Printf("[storefront.di] order mail disabled (SENDGRID_API_KEY/ORDER_MAIL_FROM/ORDER_MAIL_TO incomplete)")
		return nil
	}
	log.Printf("[storefront.di] order mail enabled to=%s", to)
	return mail.NewOrderMailer(mail.NewSendGridClient(key), from, to)
}
