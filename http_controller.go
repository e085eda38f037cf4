package registry

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// TokenResponse is the bearer token envelope returned by registration and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewTokenResponse(token string) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: "bearer"}
}

// GetRouterSession extracts the validated session from the router context.
func GetRouterSession(c router.Context, key string) (*SessionObject, error) {
	claims, ok := GetRouterClaims(c, key)
	if !ok {
		return nil, ErrUnableToFindSession
	}
	return sessionFromAuthClaims(claims)
}

func RegisterOwnerRoutes[T any](app router.Router[T], opts ...OwnerControllerOption) {
	controller := NewOwnerController(opts...)

	app.
		Post(controller.Routes.Owners, controller.RegistrationCreate).
		SetName("owners.register")

	app.
		Post(controller.Routes.Token, controller.TokenCreate).
		SetName("owners.token")

	app.
		Get(controller.Routes.Me, controller.Me, controller.Protected).
		SetName("owners.me")
}

func RegisterVehicleRoutes[T any](app router.Router[T], opts ...VehicleControllerOption) {
	controller := NewVehicleController(opts...)

	app.
		Post(controller.Routes.Vehicles, controller.Create, controller.Protected).
		SetName("vehicles.create")

	app.
		Get(controller.Routes.Vehicles, controller.List, controller.Protected).
		SetName("vehicles.list")

	app.
		Get(fmt.Sprintf("%s/:id", controller.Routes.Vehicles), controller.Show, controller.Protected).
		SetName("vehicles.show")

	app.
		Put(fmt.Sprintf("%s/:id", controller.Routes.Vehicles), controller.Update, controller.Protected).
		SetName("vehicles.update")

	app.
		Delete(fmt.Sprintf("%s/:id", controller.Routes.Vehicles), controller.Delete, controller.Protected).
		SetName("vehicles.delete")
}

type OwnerControllerRoutes struct {
	Owners string
	Token  string
	Me     string
}

type OwnerController struct {
	Debug      bool
	Logger     Logger
	Repo       RepositoryManager
	Routes     *OwnerControllerRoutes
	Auther     *Auther
	Protected  router.MiddlewareFunc
	ContextKey string
}

type OwnerControllerOption func(*OwnerController) *OwnerController

func NewOwnerController(opts ...OwnerControllerOption) *OwnerController {
	c := &OwnerController{
		Logger:     defLogger{},
		ContextKey: "owner",
		Routes: &OwnerControllerRoutes{
			Owners: "/vehicle_owners",
			Token:  "/token",
			Me:     "/vehicle_owners/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in owner controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in owner controller...")
	}

	if c.Protected == nil {
		panic("Missing protected middleware in owner controller...")
	}

	return c
}

// RegisterOwnerPayload is the registration body
type RegisterOwnerPayload struct {
	Document string `form:"document" json:"document"`
	Email    string `form:"email" json:"email"`
	Address  string `form:"address" json:"address"`
	State    string `form:"state" json:"state"`
	City     string `form:"city" json:"city"`
	Phone    string `form:"phone" json:"phone"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterOwnerPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Document, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Phone, validation.By(ValidatePhoneNumber("BR"))),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.State, validation.Length(0, 100)),
		validation.Field(&r.City, validation.Length(0, 100)),
	)
}

// RegistrationCreate registers a new owner and logs them in, returning a
// bearer token so the client can skip a second round trip.
func (a *OwnerController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegisterOwnerPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register owner parse payload", "error", err)
		return WriteError(ctx, ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register owner validate payload", "error", err)
		return WriteValidationError(ctx, err)
	}

	if a.Debug {
		fmt.Println("======= OWNER REGISTER ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=============================")
	}

	req := RegisterOwnerMessage{
		Document: payload.Document,
		Email:    payload.Email,
		Address:  payload.Address,
		State:    payload.State,
		City:     payload.City,
		Phone:    payload.Phone,
		Password: payload.Password,
	}

	registerOwner := NewRegisterOwnerHandler(a.Repo)
	owner, err := registerOwner.Execute(ctx.Context(), req)
	if err != nil {
		a.Logger.Error("register owner error", "error", err)
		return WriteError(ctx, err)
	}

	token, err := a.Auther.IssueToken(NewOwnerIdentity(owner))
	if err != nil {
		a.Logger.Error("register owner token error", "error", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, NewTokenResponse(token))
}

// TokenRequestPayload is the form encoded login body. The field names follow
// the OAuth2 password grant convention, username carries the email.
type TokenRequestPayload struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r TokenRequestPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenCreate exchanges owner credentials for a bearer token.
func (a *OwnerController) TokenCreate(ctx router.Context) error {
	payload := new(TokenRequestPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("token parse payload", "error", err)
		return WriteError(ctx, ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return WriteValidationError(ctx, err)
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		a.Logger.Error("token login error", "error", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, NewTokenResponse(token))
}

// Me returns the authenticated owner's stored profile.
func (a *OwnerController) Me(ctx router.Context) error {
	ownerID, err := CurrentOwnerID(ctx, a.ContextKey)
	if err != nil {
		return WriteError(ctx, err)
	}

	owner, err := a.Repo.Owners().GetByID(ctx.Context(), ownerID)
	if err != nil {
		a.Logger.Error("owner lookup error", "error", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, owner.PublicProfile())
}

type VehicleControllerRoutes struct {
	Vehicles string
}

type VehicleController struct {
	Debug      bool
	Logger     Logger
	Repo       RepositoryManager
	Routes     *VehicleControllerRoutes
	Protected  router.MiddlewareFunc
	ContextKey string
}

type VehicleControllerOption func(*VehicleController) *VehicleController

func NewVehicleController(opts ...VehicleControllerOption) *VehicleController {
	c := &VehicleController{
		Logger:     defLogger{},
		ContextKey: "owner",
		Routes: &VehicleControllerRoutes{
			Vehicles: "/vehicles",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in vehicle controller...")
	}

	if c.Protected == nil {
		panic("Missing protected middleware in vehicle controller...")
	}

	return c
}

// VehiclePayload is the create and update body. Updates replace the whole
// record with these values.
type VehiclePayload struct {
	LicensePlate      string `form:"license_plate" json:"license_plate"`
	LicensePlateCity  string `form:"license_plate_city" json:"license_plate_city"`
	LicensePlateState string `form:"license_plate_state" json:"license_plate_state"`
	Type              string `form:"v_type" json:"v_type"`
	Make              string `form:"v_make" json:"v_make"`
	Color             string `form:"color" json:"color"`
	Year              int    `form:"year" json:"year"`
	Renavam           string `form:"renavam" json:"renavam"`
	Chassis           string `form:"chassis" json:"chassis"`
	AxlesNumber       int    `form:"axles_number" json:"axles_number"`
}

// Validate will run validation rules
func (r VehiclePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LicensePlate, validation.Required, validation.Length(1, 20)),
		validation.Field(&r.Year, validation.Min(1900), validation.Max(2100)),
		validation.Field(&r.Renavam, validation.Length(0, 20), is.Digit),
		validation.Field(&r.AxlesNumber, validation.Min(0), validation.Max(20)),
	)
}

func (r VehiclePayload) toVehicle() *Vehicle {
	return &Vehicle{
		LicensePlate:      r.LicensePlate,
		LicensePlateCity:  r.LicensePlateCity,
		LicensePlateState: r.LicensePlateState,
		Type:              r.Type,
		Make:              r.Make,
		Color:             r.Color,
		Year:              r.Year,
		Renavam:           r.Renavam,
		Chassis:           r.Chassis,
		AxlesNumber:       r.AxlesNumber,
	}
}

// Create registers a vehicle under the authenticated owner.
func (a *VehicleController) Create(ctx router.Context) error {
	ownerID, err := CurrentOwnerID(ctx, a.ContextKey)
	if err != nil {
		return WriteError(ctx, err)
	}

	payload := new(VehiclePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("vehicle create parse payload", "error", err)
		return WriteError(ctx, ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return WriteValidationError(ctx, err)
	}

	vehicle, err := a.Repo.Vehicles().Create(ctx.Context(), ownerID, payload.toVehicle())
	if err != nil {
		a.Logger.Error("vehicle create error", "error", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, vehicle)
}

// List returns the authenticated owner's vehicles, newest first.
func (a *VehicleController) List(ctx router.Context) error {
	ownerID, err := CurrentOwnerID(ctx, a.ContextKey)
	if err != nil {
		return WriteError(ctx, err)
	}

	vehicles, err := a.Repo.Vehicles().ListByOwner(ctx.Context(), ownerID)
	if err != nil {
		a.Logger.Error("vehicle list error", "error", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, vehicles)
}

// Show returns one vehicle. Vehicles that exist but belong to another owner
// look exactly like vehicles that do not exist.
func (a *VehicleController) Show(ctx router.Context) error {
	ownerID, err := CurrentOwnerID(ctx, a.ContextKey)
	if err != nil {
		return WriteError(ctx, err)
	}

	vehicleID, err := a.vehicleID(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	vehicle, err := a.Repo.Vehicles().GetScoped(ctx.Context(), ownerID, vehicleID)
	if err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, vehicle)
}

// Update replaces every mutable attribute with the payload values.
func (a *VehicleController) Update(ctx router.Context) error {
	ownerID, err := CurrentOwnerID(ctx, a.ContextKey)
	if err != nil {
		return WriteError(ctx, err)
	}

	vehicleID, err := a.vehicleID(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	payload := new(VehiclePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("vehicle update parse payload", "error", err)
		return WriteError(ctx, ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return WriteValidationError(ctx, err)
	}

	vehicle, err := a.Repo.Vehicles().UpdateScoped(ctx.Context(), ownerID, vehicleID, payload.toVehicle())
	if err != nil {
		a.Logger.Error("vehicle update error", "error", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, vehicle)
}

// Delete removes the vehicle.
func (a *VehicleController) Delete(ctx router.Context) error {
	ownerID, err := CurrentOwnerID(ctx, a.ContextKey)
	if err != nil {
		return WriteError(ctx, err)
	}

	vehicleID, err := a.vehicleID(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	if err := a.Repo.Vehicles().DeleteScoped(ctx.Context(), ownerID, vehicleID); err != nil {
		return WriteError(ctx, err)
	}

	return ctx.NoContent(router.StatusNoContent)
}

func (a *VehicleController) vehicleID(ctx router.Context) (uuid.UUID, error) {
	raw := ctx.Param("id", "")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrVehicleNotFound
	}
	return id, nil
}

// ValidatePhoneNumber checks the value parses as a valid number for the
// given default region. Empty values pass, the field is optional.
func ValidatePhoneNumber(region string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}

		num, err := phonenumbers.Parse(s, region)
		if err != nil {
			return errors.New("must be a valid phone number")
		}
		if !phonenumbers.IsValidNumber(num) {
			return errors.New("must be a valid phone number")
		}
		return nil
	}
}
