package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tiketi/auth"
	"tiketi/client"
	"tiketi/models"
	"tiketi/services"
)

func isUnauthorized(err error) bool {
	return errors.Is(err, client.ErrUnauthorized)
}

func isNotFound(err error) bool {
	return errors.Is(err, client.ErrNotFound)
}

// Home renders the landing page with the newest events snapshot.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	featured := p.featuredEvents(r)
	if len(featured) > 3 {
		featured = featured[:3]
	}
	p.render(w, r, "home", "Tiketi", featured)
}

func (p *Pages) featuredEvents(r *http.Request) []models.Event {
	p.featuredMu.RLock()
	cached := p.featured
	p.featuredMu.RUnlock()
	if cached != nil {
		return cached
	}

	token := p.seq.Next()
	events, err := p.api.Events.List(r.Context(), models.EventFilters{})
	if err != nil {
		return nil
	}
	p.storeFeatured(token, events)
	return events
}

// storeFeatured keeps the snapshot only if no newer fetch has started
// since; a slow earlier response never overwrites fresher data.
func (p *Pages) storeFeatured(token uint64, events []models.Event) {
	if p.seq.Stale(token) {
		return
	}
	p.featuredMu.Lock()
	p.featured = events
	p.featuredMu.Unlock()
}

// Auth pages

func (p *Pages) LoginForm(w http.ResponseWriter, r *http.Request) {
	if sessionFrom(r.Context()).Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	p.render(w, r, "login", "Sign in", nil)
}

func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectNotice(w, r, "/login", "Invalid form submission")
		return
	}
	resp, err := p.api.Auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			redirectNotice(w, r, "/login", "Invalid email or password")
			return
		}
		p.fail(w, r, err)
		return
	}
	auth.Save(auth.NewCookieStorage(w, r), auth.Session{User: resp.User, Token: resp.Token})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (p *Pages) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if sessionFrom(r.Context()).Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	p.render(w, r, "register", "Create account", nil)
}

func (p *Pages) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectNotice(w, r, "/register", "Invalid form submission")
		return
	}
	req := models.RegisterRequest{
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Phone:     r.PostFormValue("phone"),
		Role:      r.PostFormValue("role"),
	}
	resp, err := p.api.Auth.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, client.ErrEmailTaken) {
			redirectNotice(w, r, "/register", "An account with that email already exists")
			return
		}
		p.fail(w, r, err)
		return
	}
	auth.Save(auth.NewCookieStorage(w, r), auth.Session{User: resp.User, Token: resp.Token})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (p *Pages) Logout(w http.ResponseWriter, r *http.Request) {
	auth.NewCookieStorage(w, r).Clear()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Event pages

type eventsPage struct {
	Events  []models.Event
	Filters models.EventFilters
}

func (p *Pages) Events(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.EventFilters{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		County:     q.Get("county"),
		Date:       q.Get("date"),
		PriceRange: models.PriceRange(q.Get("priceRange")),
	}

	token := p.seq.Next()
	events, err := p.api.Events.List(r.Context(), filters)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	if filters.IsZero() {
		p.storeFeatured(token, events)
	}
	p.render(w, r, "events", "Events", eventsPage{Events: events, Filters: filters})
}

type eventPage struct {
	Event    *models.Event
	CanBook  bool
	Methods  []models.PaymentMethod
	SoldOut  bool
	Upcoming bool
}

func (p *Pages) Event(w http.ResponseWriter, r *http.Request) {
	event, err := p.api.Events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.fail(w, r, err)
		return
	}

	methods := make([]models.PaymentMethod, 0, len(p.processors))
	for _, m := range []models.PaymentMethod{models.PaymentMpesa, models.PaymentCard} {
		if _, ok := p.processors[m]; ok {
			methods = append(methods, m)
		}
	}
	p.render(w, r, "event", event.Title, eventPage{
		Event:    event,
		CanBook:  sessionFrom(r.Context()).Authenticated(),
		Methods:  methods,
		SoldOut:  event.AvailableSlots == 0,
		Upcoming: event.StartsAt().After(p.clk.Now()),
	})
}

// Book drives the whole booking flow off one form submit: ticket
// selection, payment (or the free shortcut), then booking creation.
func (p *Pages) Book(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		redirectNotice(w, r, "/events/"+eventID, "Invalid form submission")
		return
	}

	event, err := p.api.Events.Get(r.Context(), eventID)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	flow := services.NewBookingFlow(event, nil)
	for _, tt := range event.TicketTypes {
		qty, _ := strconv.Atoi(r.PostFormValue("qty_" + tt.ID))
		if err := flow.SetQuantity(tt.ID, qty); err != nil {
			redirectNotice(w, r, "/events/"+eventID, "Invalid ticket selection")
			return
		}
	}
	if err := flow.ProceedToPayment(); err != nil {
		redirectNotice(w, r, "/events/"+eventID, "Please select at least one ticket")
		return
	}

	method := models.PaymentMethod(r.PostFormValue("paymentMethod"))
	phone := r.PostFormValue("phoneNumber")
	if flow.TotalAmount() == 0 {
		if err := flow.ConfirmFree(); err != nil {
			p.fail(w, r, err)
			return
		}
	} else {
		processor, ok := p.processors[method]
		if !ok {
			redirectNotice(w, r, "/events/"+eventID, "Please choose a payment method")
			return
		}
		if err := flow.Pay(r.Context(), processor, phone); err != nil {
			switch {
			case errors.Is(err, services.ErrMissingPhone):
				redirectNotice(w, r, "/events/"+eventID, "Please enter your M-Pesa phone number")
			case errors.Is(err, services.ErrInvalidPhone):
				redirectNotice(w, r, "/events/"+eventID, "Please enter a valid Kenyan phone number")
			case errors.Is(err, services.ErrPaymentFailed):
				redirectNotice(w, r, "/events/"+eventID, "Payment failed. Please try again.")
			default:
				p.fail(w, r, err)
			}
			return
		}
	}

	_, err = p.api.Bookings.Create(r.Context(), eventID, models.CreateBookingRequest{
		Selections:    flow.Selections(),
		PaymentMethod: method,
		PhoneNumber:   phone,
		TransactionID: flow.TransactionID(),
	})
	if err != nil {
		if errors.Is(err, client.ErrInsufficientTickets) {
			redirectNotice(w, r, "/events/"+eventID, "Not enough tickets left for your selection")
			return
		}
		p.fail(w, r, err)
		return
	}
	redirectNotice(w, r, "/tickets", "Booking confirmed. See you there!")
}

// Ticket pages

func (p *Pages) Tickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := p.api.Tickets.Mine(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, "tickets", "My Tickets", tickets)
}

// TicketPrint renders the standalone print view for a ticket.
func (p *Pages) TicketPrint(w http.ResponseWriter, r *http.Request) {
	ticket, err := p.api.Tickets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.templates["ticket_print"].ExecuteTemplate(w, "ticket_print", ticket); err != nil {
		p.fail(w, r, err)
	}
}

// Dashboard

func (p *Pages) DashboardPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	view, err := p.dash.Build(r.Context(), sess.User)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, "dashboard", "Dashboard", view)
}

// Event creation

func (p *Pages) CreateEventForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "create_event", "Create Event", nil)
}

func (p *Pages) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectNotice(w, r, "/create-event", "Invalid form submission")
		return
	}

	capacity, _ := strconv.Atoi(r.PostFormValue("capacity"))
	req := models.CreateEventRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Date:        r.PostFormValue("date"),
		Time:        r.PostFormValue("time"),
		Location:    r.PostFormValue("location"),
		County:      r.PostFormValue("county"),
		Category:    r.PostFormValue("category"),
		Capacity:    capacity,
		ImageURL:    r.PostFormValue("imageUrl"),
		IsFree:      r.PostFormValue("isFree") == "on",
	}

	names := r.PostForm["ttName"]
	prices := r.PostForm["ttPrice"]
	quantities := r.PostForm["ttQuantity"]
	descriptions := r.PostForm["ttDescription"]
	for i, name := range names {
		if name == "" {
			continue
		}
		tt := models.TicketTypeInput{Name: name}
		if i < len(prices) {
			tt.Price, _ = strconv.Atoi(prices[i])
		}
		if i < len(quantities) {
			tt.Quantity, _ = strconv.Atoi(quantities[i])
		}
		if i < len(descriptions) {
			tt.Description = descriptions[i]
		}
		req.TicketTypes = append(req.TicketTypes, tt)
	}

	event, err := p.api.Events.Create(r.Context(), req)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	redirectNotice(w, r, "/events/"+event.ID, "Event published")
}
