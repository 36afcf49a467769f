// Package neatwork is a NEAT (NeuroEvolution of Augmenting Topologies) engine.
//
// It evolves both the weights and the connectivity of small neural networks.
// Networks are evaluated statefully: recurrent links carry the previous tick's
// value forward, which gives evolved networks a short-term memory.
//
// The library lives in the neat package:
//
//	cfg := neat.DefaultConfig()
//	trainer, err := neat.NewTrainer(cfg, 3, 1, func(n *neat.Network) float64 {
//		out, err := n.Evaluate([]float64{0.1, 0.2, 0.3})
//		if err != nil {
//			return 0
//		}
//		return out[0]
//	})
//	if err != nil {
//		log.Fatalf("Error creating trainer: %v", err)
//	}
//
//	for i := 0; i < 100; i++ {
//		if err := trainer.Step(ctx); err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//	}
//	best, score := trainer.BestNetwork()
//
// Configuration can be loaded from an INI (or YAML) file with neat.LoadConfig.
package neatwork
