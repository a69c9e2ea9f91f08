package content

// Broker is an external trading platform listed on the investment page
type Broker struct {
	Name        string
	URL         string
	Description string
	Type        string
}

// BrokerGroup is a named list of brokers for one market
type BrokerGroup struct {
	Market  string
	Brokers []Broker
}

// Brokers returns the broker directory, South African platforms first
func Brokers() []BrokerGroup {
	return []BrokerGroup{
		{
			Market: "South Africa",
			Brokers: []Broker{
				{Name: "Standard Bank", URL: "https://www.standardbank.co.za/southafrica/personal/products-and-services/bank-with-us/investment-and-insurance-solutions/webtrader", Description: "Leading South African bank with a full trading platform", Type: "Full Service Bank"},
				{Name: "Nedbank", URL: "https://www.nedbank.co.za/content/nedbank/desktop/gt/en/personal/invest/shares-and-investments.html", Description: "Major South African bank offering investment services", Type: "Full Service Bank"},
				{Name: "FNB Securities", URL: "https://www.fnb.co.za/ways-to-bank/online-banking/investec-online-share-trading.html", Description: "FNB's dedicated securities trading platform", Type: "Bank Securities"},
				{Name: "Easy Equities", URL: "https://www.easyequities.co.za/", Description: "Popular South African online trading platform", Type: "Online Broker"},
				{Name: "Investec", URL: "https://www.investec.com/en_za/focus/investing.html", Description: "Investment and wealth management services", Type: "Investment Bank"},
				{Name: "Sanlam iTrade", URL: "https://www.sanlamitrade.co.za/", Description: "Sanlam's online share trading platform", Type: "Insurance & Investment"},
			},
		},
		{
			Market: "International",
			Brokers: []Broker{
				{Name: "Charles Schwab", URL: "https://www.schwab.com/", Description: "Full-service brokerage with research tools", Type: "Full Service Broker"},
				{Name: "Fidelity", URL: "https://www.fidelity.com/", Description: "Investment firm with zero-fee trading", Type: "Full Service Broker"},
				{Name: "E*TRADE", URL: "https://us.etrade.com/home", Description: "Online broker with a simple platform", Type: "Online Broker"},
				{Name: "Interactive Brokers", URL: "https://www.interactivebrokers.com/", Description: "Professional trading platform with global access", Type: "Professional Broker"},
				{Name: "Robinhood", URL: "https://robinhood.com/", Description: "Commission-free, mobile-first trading", Type: "Mobile Broker"},
			},
		},
	}
}
