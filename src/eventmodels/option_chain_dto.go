package eventmodels

// OptionContractDTO is one raw chain row as reported by the market data
// provider. Numeric fields the provider omits decode to zero; the normalizer
// treats absence as "unquoted", not as an error.
type OptionContractDTO struct {
	Symbol            string         `json:"symbol"`
	Strike            float64        `json:"strike"`
	ExpirationDate    ExpirationDate `json:"expiration_date"`
	OptionType        OptionType     `json:"option_type"`
	Bid               float64        `json:"bid"`
	Ask               float64        `json:"ask"`
	LastPrice         float64        `json:"last"`
	Volume            int            `json:"volume"`
	OpenInterest      int            `json:"open_interest"`
	ImpliedVolatility float64        `json:"implied_volatility"`
}

// OptionChainDTO groups a single expiration's contracts by side.
type OptionChainDTO struct {
	Calls []*OptionContractDTO
	Puts  []*OptionContractDTO
}

type optionChainListDTO struct {
	Option []*OptionContractDTO `json:"option"`
}

// OptionChainResponseDTO mirrors the provider's chain payload: a flat
// contract list tagged with option_type.
type OptionChainResponseDTO struct {
	Options optionChainListDTO `json:"options"`
}

func (dto *OptionChainResponseDTO) SplitBySide() *OptionChainDTO {
	chain := &OptionChainDTO{}

	for _, contract := range dto.Options.Option {
		switch contract.OptionType {
		case OptionTypeCall:
			chain.Calls = append(chain.Calls, contract)
		case OptionTypePut:
			chain.Puts = append(chain.Puts, contract)
		}
	}

	return chain
}
