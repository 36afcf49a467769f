package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphOfEmptyNetwork(t *testing.T) {
	n := NewEmpty(3, 2, newRand(1))

	g := n.Graph()
	assert.Equal(t, 5, g.Nodes().Len())
	assert.Equal(t, 6, g.Edges().Len())
	assert.False(t, n.IsRecurrent())
	assert.Empty(t, n.RecurrentGenes())

	order, err := n.TopologicalOrder()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, order)
	assertForward(t, n, order)
}

// assertForward checks that every enabled gene points forward in order.
func assertForward(t *testing.T, n *Network, order []int) {
	t.Helper()
	pos := make(map[int]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, g := range n.Genes {
		if !g.Disabled {
			assert.Less(t, pos[g.Link.Src], pos[g.Link.Dest], "gene %s", g.Link)
		}
	}
}

func TestGraphSkipsDisabledGenes(t *testing.T) {
	n := NewEmpty(2, 1, newRand(1))
	require.NoError(t, n.AddNodeInGene(0))

	assert.Equal(t, 3, n.Graph().Edges().Len())

	order, err := n.TopologicalOrder()
	require.NoError(t, err)
	assert.Len(t, order, 4)
	assertForward(t, n, order)
}

func TestRecurrentGenes(t *testing.T) {
	n := recurrentNetwork()
	assert.Equal(t, []int{1}, n.RecurrentGenes())
	assert.True(t, n.IsRecurrent())
	_, err := n.TopologicalOrder()
	assert.Error(t, err)

	n = NewEmpty(1, 1, newRand(1))
	require.NoError(t, n.AddNodeInGene(0))
	require.NoError(t, n.AddNodeInGene(1))
	n.AddConnection(2, 3, 0.5)
	assert.Equal(t, []int{4, 5}, n.RecurrentGenes())
	_, err = n.TopologicalOrder()
	assert.Error(t, err)

	n.Genes[5].Disable()
	assert.False(t, n.IsRecurrent())
}
