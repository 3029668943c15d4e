package indexer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	apiclient "erc20indexer/api-client"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const AddressLength = 42

// Connector is a wallet provider able to hand out accounts.
type Connector interface {
	RequestAccounts(ctx context.Context) ([]string, error)
}

// Observer is notified after every transition, outside the session lock.
type Observer func(prev, next State)

// Session owns the displayed state: the connected wallet address, the busy
// flag and the last published result set.
type Session struct {
	client apiclient.APIClienter

	mu        sync.Mutex
	state     State
	observers []Observer
}

func NewSession(client apiclient.APIClienter) *Session {
	return &Session{client: client}
}

func (s *Session) Observe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) apply(ev Event) State {
	s.mu.Lock()
	prev := s.state
	next := Transition(prev, ev)
	s.state = next
	observers := s.observers
	s.mu.Unlock()

	for _, o := range observers {
		o(prev, next)
	}
	return next
}

// Connect requests account access from c, remembers the first account and
// queries its balances. A nil connector means no provider is installed.
func (s *Session) Connect(ctx context.Context, c Connector) error {
	if c == nil {
		log.Printf("connect: %v", ErrProviderNotFound)
		s.apply(Event{Kind: EventConnectFailed, Err: ErrProviderNotFound})
		return ErrProviderNotFound
	}

	accounts, err := c.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = errors.New("no accounts returned")
	}
	if err != nil {
		log.Printf("connect failed: %v", err)
		// pkg/errors keeps a single cause and both errors must match errors.Is
		err = fmt.Errorf("%w: %w", ErrConnectionFailed, err)
		s.apply(Event{Kind: EventConnectFailed, Err: err})
		return err
	}

	account := accounts[0]
	log.Printf("connected: %v", accounts)
	s.apply(Event{Kind: EventConnected, Address: account})

	_, err = s.Query(ctx, account)
	return err
}

// Query fetches the balances of candidate, or of the connected wallet once
// one is connected, and publishes them with their token metadata.
func (s *Session) Query(ctx context.Context, candidate string) ([]Holding, error) {
	s.apply(Event{Kind: EventStarted, Address: candidate})

	results, err := s.fetch(ctx, candidate)
	if err != nil {
		log.Printf("query %s: %v", candidate, err)
		s.apply(Event{Kind: EventFailed, Err: err})
		return nil, err
	}

	s.apply(Event{Kind: EventPublished, Results: results})
	return results, nil
}

func (s *Session) fetch(ctx context.Context, candidate string) ([]Holding, error) {
	if err := ValidateAddress(candidate); err != nil {
		return nil, err
	}

	address := candidate
	if connected := s.State().ConnectedAddress; connected != "" {
		address = connected
	}
	s.apply(Event{Kind: EventValidated, Address: address})

	balances, err := s.client.GetTokenBalances(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(balances) == 0 {
		return nil, errors.Wrap(ErrNoBalances, address)
	}
	s.apply(Event{Kind: EventBalancesFetched, Count: len(balances)})

	contracts, slot := distinctContracts(balances)
	metadata, err := JoinAll(ctx, len(contracts), func(ctx context.Context, i int) (*apiclient.TokenMetadata, error) {
		md, err := s.client.GetTokenMetadata(ctx, contracts[i])
		if err == nil && md == nil {
			err = errors.Errorf("empty metadata for %s", contracts[i])
		}
		return md, err
	})
	if err != nil {
		return nil, err
	}

	results := make([]Holding, len(balances))
	for i, b := range balances {
		results[i] = Holding{Balance: *b, Metadata: *metadata[slot[i]]}
	}
	return results, nil
}

func ValidateAddress(address string) error {
	if len(address) != AddressLength {
		return errors.Wrapf(ErrInvalidAddress, "%q has %d characters", address, len(address))
	}
	return nil
}

// distinctContracts returns each contract once, in first-seen order, and for
// every balance the index of its contract in that list.
func distinctContracts(balances []*apiclient.TokenBalance) ([]string, []int) {
	seen := make(map[string]int, len(balances))
	contracts := make([]string, 0, len(balances))
	slot := make([]int, len(balances))
	for i, b := range balances {
		key := contractKey(b.ContractAddress)
		idx, ok := seen[key]
		if !ok {
			idx = len(contracts)
			seen[key] = idx
			contracts = append(contracts, b.ContractAddress)
		}
		slot[i] = idx
	}
	return contracts, slot
}

func contractKey(contract string) string {
	if common.IsHexAddress(contract) {
		return common.HexToAddress(contract).Hex()
	}
	return strings.ToLower(contract)
}
