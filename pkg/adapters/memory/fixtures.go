package memory

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/value"
	"gopkg.in/yaml.v3"
)

// fixtureFile is the YAML layout of a fixture file:
//
//	tickers:
//	  IBM:
//	    closes:
//	      - {date: 2024-01-02, price: 161.5}
//	    income_statement:
//	      periods: [2024-06-30, 2024-03-31]
//	      rows:
//	        - {item: Total Revenue, values: [15770000000, 14460000000]}
//	    info:
//	      city: Armonk
//	      zip: null
type fixtureFile struct {
	Tickers map[string]tickerFixture `yaml:"tickers"`
}

type tickerFixture struct {
	Closes []struct {
		Date  string  `yaml:"date"`
		Price float64 `yaml:"price"`
	} `yaml:"closes"`
	IncomeStatement *struct {
		Periods []string `yaml:"periods"`
		Rows    []struct {
			Item   string     `yaml:"item"`
			Values []*float64 `yaml:"values"`
		} `yaml:"rows"`
	} `yaml:"income_statement"`
	Info yaml.Node `yaml:"info"`
}

// LoadProvider reads a YAML fixture file.
func LoadProvider(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures builds a provider from YAML fixture data. Info mappings keep their key order.
func ParseFixtures(data []byte) (*Provider, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	tickers := make([]string, 0, len(file.Tickers))
	for ticker := range file.Tickers {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	fixtures := make(map[string]Fixture, len(file.Tickers))
	seen := make(map[string]string, len(file.Tickers))
	for _, ticker := range tickers {
		tf := file.Tickers[ticker]
		key := strings.ToUpper(ticker)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("tickers %q and %q differ only in case", prev, ticker)
		}
		seen[key] = ticker

		var f Fixture

		for _, c := range tf.Closes {
			d, err := time.Parse("2006-01-02", c.Date)
			if err != nil {
				return nil, fmt.Errorf("%s: close date %q: %w", ticker, c.Date, err)
			}
			f.Closes = append(f.Closes, domain.Close{Date: d, Price: c.Price})
		}

		if tf.IncomeStatement != nil {
			st := &domain.Statement{}
			for _, p := range tf.IncomeStatement.Periods {
				d, err := time.Parse("2006-01-02", p)
				if err != nil {
					return nil, fmt.Errorf("%s: statement period %q: %w", ticker, p, err)
				}
				st.Periods = append(st.Periods, d)
			}
			for _, row := range tf.IncomeStatement.Rows {
				st.Rows = append(st.Rows, domain.StatementRow{Item: row.Item, Values: row.Values})
			}
			f.Statement = st
		}

		if tf.Info.Kind != 0 {
			v, err := nodeValue(&tf.Info)
			if err != nil {
				return nil, fmt.Errorf("%s: info: %w", ticker, err)
			}
			if v.Kind() != value.KindMap {
				return nil, fmt.Errorf("%s: info must be a mapping", ticker)
			}
			f.Info = v.Map()
		}

		fixtures[ticker] = f
	}
	return NewProvider(fixtures), nil
}

// nodeValue converts a YAML node into a Value, keeping mapping order.
func nodeValue(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return value.Null(), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return value.Value{}, err
			}
			return value.Bool(b), nil
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return value.Value{}, err
			}
			return value.Number(f), nil
		default:
			return value.String(n.Value), nil
		}
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.List(items...), nil
	case yaml.MappingNode:
		m := value.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return value.Value{}, err
			}
			m.Set(n.Content[i].Value, v)
		}
		return value.Object(m), nil
	default:
		return value.Value{}, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}
