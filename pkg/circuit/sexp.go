package circuit

import (
	"fmt"
	"sort"

	"github.com/jeffwheeler/LibrePCB/pkg/ids"
	"github.com/jeffwheeler/LibrePCB/pkg/sexp"
)

// Document format:
//
//	(circuit
//	 (attribute (ns "PRJ") (key "TITLE") (value "demo"))
//	 (netsignal (uuid U) (name "SIG1"))
//	 (component (uuid U) (name "U1")
//	  (attribute (ns "") (key "VALUE") (value "10k"))
//	  (variant (uuid U) (name "default")
//	   (item (uuid U) (symbol U) (suffix "A")
//	    (pinmap (pin U) (signal U))))))

// FromSexp parses a (circuit ...) node.
func FromSexp(node *sexp.List) (*Circuit, error) {
	if node.Name() != "circuit" {
		return nil, fmt.Errorf("expected 'circuit' node, got %q", node.Name())
	}

	c := NewCircuit()

	for _, attrNode := range node.Children("attribute") {
		ns, key, value, err := attributeFromSexp(attrNode)
		if err != nil {
			return nil, err
		}
		c.attributes.Set(ns, key, value)
	}

	for _, sigNode := range node.Children("netsignal") {
		uuid, err := sexp.ChildUUID(sigNode, "uuid")
		if err != nil {
			return nil, fmt.Errorf("netsignal: %w", err)
		}
		name, err := sexp.ChildString(sigNode, "name")
		if err != nil {
			return nil, fmt.Errorf("netsignal %s: %w", uuid, err)
		}
		if err := c.AddSignal(NewNetSignal(uuid, name)); err != nil {
			return nil, err
		}
	}

	for _, cmpNode := range node.Children("component") {
		cmp, err := componentFromSexp(cmpNode)
		if err != nil {
			return nil, err
		}
		if err := c.AddComponent(cmp); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func componentFromSexp(node *sexp.List) (*ComponentInstance, error) {
	uuid, err := sexp.ChildUUID(node, "uuid")
	if err != nil {
		return nil, fmt.Errorf("component: %w", err)
	}

	name, err := sexp.ChildString(node, "name")
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", uuid, err)
	}

	variantNode, ok := node.Child("variant")
	if !ok {
		return nil, fmt.Errorf("component %s: missing required \"variant\" node", uuid)
	}
	variant, err := variantFromSexp(variantNode)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", uuid, err)
	}

	cmp := NewComponentInstance(uuid, name, variant)
	for _, attrNode := range node.Children("attribute") {
		ns, key, value, err := attributeFromSexp(attrNode)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", uuid, err)
		}
		cmp.attributes.Set(ns, key, value)
	}
	return cmp, nil
}

func variantFromSexp(node *sexp.List) (*SymbolVariant, error) {
	uuid, err := sexp.ChildUUID(node, "uuid")
	if err != nil {
		return nil, fmt.Errorf("variant: %w", err)
	}

	name, err := sexp.ChildString(node, "name")
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", uuid, err)
	}

	var items []*SymbolVariantItem
	for _, itemNode := range node.Children("item") {
		item, err := variantItemFromSexp(itemNode)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", uuid, err)
		}
		items = append(items, item)
	}

	return NewSymbolVariant(uuid, name, items...), nil
}

func variantItemFromSexp(node *sexp.List) (*SymbolVariantItem, error) {
	uuid, err := sexp.ChildUUID(node, "uuid")
	if err != nil {
		return nil, fmt.Errorf("item: %w", err)
	}

	symbolUUID, err := sexp.ChildUUID(node, "symbol")
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", uuid, err)
	}

	suffix := ""
	if suffixNode, ok := node.Child("suffix"); ok {
		suffix, err = sexp.GetString(suffixNode, 1)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", uuid, err)
		}
	}

	pinSignals := make(map[ids.UUID]ids.UUID)
	for _, mapNode := range node.Children("pinmap") {
		pin, err := sexp.ChildUUID(mapNode, "pin")
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", uuid, err)
		}
		signal, err := sexp.ChildUUID(mapNode, "signal")
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", uuid, err)
		}
		if _, dup := pinSignals[pin]; dup {
			return nil, fmt.Errorf("item %s: pin %s mapped twice", uuid, pin)
		}
		pinSignals[pin] = signal
	}

	return NewSymbolVariantItem(uuid, symbolUUID, suffix, pinSignals), nil
}

func attributeFromSexp(node *sexp.List) (ns, key, value string, err error) {
	if ns, err = sexp.ChildString(node, "ns"); err != nil {
		return "", "", "", fmt.Errorf("attribute: %w", err)
	}
	if key, err = sexp.ChildString(node, "key"); err != nil {
		return "", "", "", fmt.Errorf("attribute: %w", err)
	}
	if value, err = sexp.ChildString(node, "value"); err != nil {
		return "", "", "", fmt.Errorf("attribute: %w", err)
	}
	return ns, key, value, nil
}

// ToSexp serializes the circuit to a (circuit ...) node.
func (c *Circuit) ToSexp() *sexp.List {
	node := sexp.NewList("circuit")

	for _, e := range c.attributes.Entries() {
		node.Append(attributeToSexp(e.Namespace, e.Key, e.Value))
	}

	for _, sig := range c.Signals() {
		node.Append(sexp.NewList("netsignal",
			sexp.UUIDNode("uuid", sig.uuid),
			sexp.StrNode("name", sig.name),
		))
	}

	for _, cmp := range c.Components() {
		node.Append(cmp.toSexp())
	}

	return node
}

func (c *ComponentInstance) toSexp() *sexp.List {
	node := sexp.NewList("component",
		sexp.UUIDNode("uuid", c.uuid),
		sexp.StrNode("name", c.name),
	)

	for _, e := range c.attributes.Entries() {
		node.Append(attributeToSexp(e.Namespace, e.Key, e.Value))
	}

	variantNode := sexp.NewList("variant",
		sexp.UUIDNode("uuid", c.variant.uuid),
		sexp.StrNode("name", c.variant.name),
	)
	for _, item := range c.variant.items {
		itemNode := sexp.NewList("item",
			sexp.UUIDNode("uuid", item.uuid),
			sexp.UUIDNode("symbol", item.symbolUUID),
			sexp.StrNode("suffix", item.suffix),
		)
		// Deterministic output: sort map entries by pin UUID
		for _, pin := range sortedPinUUIDs(item.pinSignals) {
			itemNode.Append(sexp.NewList("pinmap",
				sexp.UUIDNode("pin", pin),
				sexp.UUIDNode("signal", item.pinSignals[pin]),
			))
		}
		variantNode.Append(itemNode)
	}
	node.Append(variantNode)

	return node
}

func attributeToSexp(ns, key, value string) *sexp.List {
	return sexp.NewList("attribute",
		sexp.StrNode("ns", ns),
		sexp.StrNode("key", key),
		sexp.StrNode("value", value),
	)
}

func sortedPinUUIDs(m map[ids.UUID]ids.UUID) []ids.UUID {
	result := make([]ids.UUID, 0, len(m))
	for pin := range m {
		result = append(result, pin)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})
	return result
}
