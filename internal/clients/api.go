package clients

// API bundles every resource client over one BaseClient.
type API struct {
	Auth         *AuthClient
	Users        *UserClient
	Cards        *CardClient
	Journeys     *JourneyClient
	Transactions *TransactionClient
	Stations     *StationClient
}

// NewAPI wires the resource clients.
func NewAPI(base *BaseClient) *API {
	return &API{
		Auth:         NewAuthClient(base),
		Users:        NewUserClient(base),
		Cards:        NewCardClient(base),
		Journeys:     NewJourneyClient(base),
		Transactions: NewTransactionClient(base),
		Stations:     NewStationClient(base),
	}
}
