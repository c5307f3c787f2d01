package sgf

import (
	"strings"

	"baduk_arena/internal/domain/game"
)

// Property: одно свойство узла, значений может быть несколько (AB[aa][bb])
type Property struct {
	Key    string
	Values []string
}

// Node: узел SGF. Свойства хранятся в порядке добавления, в этом же
// порядке и пишутся.
type Node struct {
	Properties []Property
}

func (n *Node) Add(key string, values ...string) {
	for i := range n.Properties {
		if n.Properties[i].Key == key {
			n.Properties[i].Values = append(n.Properties[i].Values, values...)
			return
		}
	}
	n.Properties = append(n.Properties, Property{Key: key, Values: values})
}

func (n Node) Get(key string) []string {
	for _, p := range n.Properties {
		if p.Key == key {
			return p.Values
		}
	}
	return nil
}

// GameTree: основная линия узлов и варианты
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

type SGF struct {
	Root *GameTree
}

func (s *SGF) String() string {
	var builder strings.Builder
	builder.WriteString("(")
	if s.Root != nil {
		writeTree(&builder, s.Root)
	}
	builder.WriteString(")")
	return builder.String()
}

func writeTree(builder *strings.Builder, tree *GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")
		for _, p := range node.Properties {
			builder.WriteString(p.Key)
			for _, v := range p.Values {
				builder.WriteString("[")
				builder.WriteString(escape(v))
				builder.WriteString("]")
			}
		}
	}
	for _, child := range tree.Children {
		builder.WriteString("(")
		writeTree(builder, child)
		builder.WriteString(")")
	}
}

// Coord переводит точку в SGF-координату: (0,0) -> "aa". Пас даёт пустое значение.
func Coord(p game.Point) string {
	if p.IsPass() {
		return ""
	}
	return string([]byte{byte('a' + p.X), byte('a' + p.Y)})
}

// ColorKey: "B" или "W" для хода цветом c.
func ColorKey(c game.Color) string {
	if c == game.White {
		return "W"
	}
	return "B"
}

func escape(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "]", `\]`)
}
