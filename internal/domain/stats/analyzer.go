// Package stats derives wallet statistics from a merged, chain-tagged activity dataset.
//
// Analyze is pure and deterministic. All value and gas arithmetic uses math/big; amounts leave
// this package as base-unit decimal strings.
package stats

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	"wallet-wrapped/internal/domain/entity"
)

// TopN caps every ranked list in WalletStats.
const TopN = 10

const (
	dayLayout   = "January 2, 2006"
	monthLayout = "January 2006"
)

// Analyze computes the statistics of activity as seen from address.
func Analyze(activity entity.WalletActivity, address string) entity.WalletStats {
	wallet := strings.ToLower(address)
	txs := activity.Transactions
	transfers := activity.TokenTransfers

	s := entity.WalletStats{
		TotalTransactions:   len(txs),
		MostActiveDay:       entity.NotAvailable,
		MostActiveMonth:     entity.NotAvailable,
		TransactionsByMonth: []entity.MonthCount{},
	}

	sent, received := new(big.Int), new(big.Int)
	gasSpent, gasPriceSum := new(big.Int), new(big.Int)
	contracts := newCounter()

	var largest *entity.Transaction
	largestValue := new(big.Int)

	for i := range txs {
		tx := &txs[i]
		if tx.Succeeded() {
			s.SuccessfulTransactions++
		}
		if tx.IsContractCall() {
			s.ContractInteractions++
		}

		value := parseAmount(tx.Value)
		if strings.ToLower(tx.From) == wallet {
			sent.Add(sent, value)
		}
		if strings.ToLower(tx.To) == wallet {
			received.Add(received, value)
		}

		gasPrice := parseAmount(tx.GasPrice)
		gasSpent.Add(gasSpent, new(big.Int).Mul(parseAmount(tx.GasUsed), gasPrice))
		gasPriceSum.Add(gasPriceSum, gasPrice)

		contracts.add(strings.ToLower(tx.To))

		if largest == nil || value.Cmp(largestValue) > 0 {
			largest = tx
			largestValue = value
		}
	}
	s.FailedTransactions = s.TotalTransactions - s.SuccessfulTransactions

	s.TotalValueSent = sent.String()
	s.TotalValueReceived = received.String()
	s.NetFlow = new(big.Int).Sub(received, sent).String()
	s.TotalGasSpent = gasSpent.String()
	s.AverageGasPrice = "0"
	if len(txs) > 0 {
		// Operands are non-negative, so Quo's truncation equals floor.
		s.AverageGasPrice = new(big.Int).Quo(gasPriceSum, big.NewInt(int64(len(txs)))).String()
	}

	s.UniqueContractsInteracted = contracts.len()
	s.TopContracts = topContracts(contracts)

	if largest != nil {
		direction := entity.DirectionOut
		if strings.ToLower(largest.To) == wallet {
			direction = entity.DirectionIn
		}
		s.LargestTransaction = &entity.LargestTransaction{
			Hash:      largest.Hash,
			Value:     largestValue.String(),
			Type:      direction,
			Chain:     largest.Chain,
			TimeStamp: largest.TimeStamp,
		}
	}

	applyCalendar(&s, txs)
	applyTokens(&s, transfers, wallet)
	return s
}

// applyCalendar fills the day and month activity fields. Transactions with an unparseable
// timestamp are left out of the buckets but still count in the totals.
func applyCalendar(s *entity.WalletStats, txs []entity.Transaction) {
	days := newCounter()
	months := newCounter()
	monthStart := make(map[string]time.Time)

	for _, tx := range txs {
		sec, err := strconv.ParseInt(strings.TrimSpace(tx.TimeStamp), 10, 64)
		if err != nil {
			continue
		}
		t := time.Unix(sec, 0).UTC()
		days.add(t.Format(dayLayout))
		month := t.Format(monthLayout)
		months.add(month)
		if _, ok := monthStart[month]; !ok {
			monthStart[month] = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}

	s.TotalDaysActive = days.len()
	if day, ok := days.max(); ok {
		s.MostActiveDay = day
	}
	if month, ok := months.max(); ok {
		s.MostActiveMonth = month
	}

	byMonth := make([]entity.MonthCount, 0, months.len())
	for _, key := range months.keys {
		byMonth = append(byMonth, entity.MonthCount{Month: key, Count: months.counts[key]})
	}
	sort.SliceStable(byMonth, func(i, j int) bool {
		return monthStart[byMonth[i].Month].Before(monthStart[byMonth[j].Month])
	})
	s.TransactionsByMonth = byMonth
}

type tokenGroup struct {
	symbol   string
	name     string
	contract string
	chain    string
	count    int
	value    *big.Int
}

// groupedTokens keeps groups keyed by lowercased contract in first-seen order.
type groupedTokens struct {
	order  []string
	groups map[string]*tokenGroup
}

func newGroupedTokens() *groupedTokens {
	return &groupedTokens{groups: make(map[string]*tokenGroup)}
}

func (g *groupedTokens) add(key string, tt entity.TokenTransfer, value *big.Int) {
	grp, ok := g.groups[key]
	if !ok {
		grp = &tokenGroup{contract: key, chain: tt.Chain, value: new(big.Int)}
		g.groups[key] = grp
		g.order = append(g.order, key)
	}
	// The most recent transfer names the group.
	grp.symbol = tt.TokenSymbol
	grp.name = tt.TokenName
	grp.count++
	grp.value.Add(grp.value, value)
}

func (g *groupedTokens) list() []*tokenGroup {
	out := make([]*tokenGroup, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.groups[key])
	}
	return out
}

// applyTokens fills the token fields, including airdrop detection.
//
// A transfer into the wallet is an airdrop candidate when it was minted (sender is the zero
// address) or when the wallet never sent that token in any other transaction. This is a
// heuristic, not a classification of intent.
func applyTokens(s *entity.WalletStats, transfers []entity.TokenTransfer, wallet string) {
	tokenSent, tokenReceived := new(big.Int), new(big.Int)
	all := newGroupedTokens()

	// Outbound transfers per contract, and per (contract, hash), for the airdrop test.
	outbound := make(map[string]int)
	outboundByHash := make(map[string]map[string]int)

	for _, tt := range transfers {
		key := strings.ToLower(tt.ContractAddress)
		value := parseAmount(tt.Value)
		all.add(key, tt, value)

		if strings.ToLower(tt.From) == wallet {
			tokenSent.Add(tokenSent, value)
			outbound[key]++
			if outboundByHash[key] == nil {
				outboundByHash[key] = make(map[string]int)
			}
			outboundByHash[key][tt.Hash]++
		}
		if strings.ToLower(tt.To) == wallet {
			tokenReceived.Add(tokenReceived, value)
		}
	}

	s.TotalTokenValueSent = tokenSent.String()
	s.TotalTokenValueReceived = tokenReceived.String()
	s.UniqueTokensInteracted = len(all.order)

	groups := all.list()
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })
	s.TopTokens = make([]entity.TokenStat, 0, min(TopN, len(groups)))
	for _, g := range groups[:min(TopN, len(groups))] {
		s.TopTokens = append(s.TopTokens, entity.TokenStat{
			Symbol:          g.symbol,
			ContractAddress: g.contract,
			Count:           g.count,
			Value:           g.value.String(),
		})
	}

	airdrops := newGroupedTokens()
	for _, tt := range transfers {
		if strings.ToLower(tt.To) != wallet {
			continue
		}
		key := strings.ToLower(tt.ContractAddress)
		minted := strings.ToLower(tt.From) == entity.ZeroAddress
		// An outbound transfer of the same token under a different hash exists iff the contract's
		// outbound count exceeds the outbound count of this hash.
		sentElsewhere := outbound[key] > outboundByHash[key][tt.Hash]
		if minted || !sentElsewhere {
			airdrops.add(key, tt, parseAmount(tt.Value))
		}
	}

	drops := airdrops.list()
	sort.SliceStable(drops, func(i, j int) bool { return drops[i].value.Cmp(drops[j].value) > 0 })
	s.Airdrops = make([]entity.AirdropStat, 0, min(TopN, len(drops)))
	for _, g := range drops[:min(TopN, len(drops))] {
		s.Airdrops = append(s.Airdrops, entity.AirdropStat{
			Symbol:          g.symbol,
			TokenName:       g.name,
			ContractAddress: g.contract,
			Chain:           g.chain,
			Count:           g.count,
			Value:           g.value.String(),
		})
	}
}

func topContracts(c *counter) []entity.ContractStat {
	out := make([]entity.ContractStat, 0, c.len())
	for _, key := range c.keys {
		out = append(out, entity.ContractStat{Address: key, Count: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out[:min(TopN, len(out))]
}

// counter counts occurrences while remembering first-seen key order, which breaks every tie.
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *counter) len() int {
	return len(c.keys)
}

// max returns the key with the highest count; the first-seen key wins ties.
func (c *counter) max() (string, bool) {
	best, bestCount := "", 0
	for _, key := range c.keys {
		if c.counts[key] > bestCount {
			best, bestCount = key, c.counts[key]
		}
	}
	return best, bestCount > 0
}

// parseAmount reads a base-unit decimal string. Empty, malformed and negative inputs count as zero.
func parseAmount(s string) *big.Int {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() < 0 {
		return new(big.Int)
	}
	return v
}
