// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

//go:build integration

package content_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jakecoffman/cp"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/Espyo/Pikifen-sub018/internal/content"
	"github.com/Espyo/Pikifen-sub018/internal/mob"
)

const mother = `
name: mother
initial_state: idle
animations: [idle]
spawns:
  baby: {type: grub, x: 10, link_child: true}
states:
  idle:
    on_enter:
      - set_animation idle
      - set_timer 1
    on_timer:
      - spawn baby
      - send_message_to_links food
      - set_state resting
  resting:
    on_enter:
      - set_var rested true
`

const grub = `name = grub
script {
    idle {
        on_receive_message {
            get_event_info msg message
            if $msg = food
                set_state eat
            end_if
        }
    }
    eat {
        on_enter {
            set_var fed true
        }
    }
}
`

func writeFile(dir, name, body string) {
	Expect(os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600)).To(Succeed())
}

var _ = Describe("Loading a content directory", func() {
	var (
		dir    string
		loader *content.Loader
		world  *mob.World
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		writeFile(dir, "mother.yaml", mother)
		writeFile(dir, "grub.txt", grub)
		loader = content.NewLoader()
		world = mob.NewWorld(mob.WithSeed(3))
	})

	It("builds types from YAML and data files that cooperate at run time", func() {
		types, err := loader.LoadDir(context.Background(), dir, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(types).To(HaveLen(2))
		for _, t := range types {
			world.AddType(t)
		}

		m := world.Spawn(world.Types["mother"], cp.Vector{}, 0)
		Expect(m.State).To(Equal("idle"))

		world.Tick(1)

		Expect(m.State).To(Equal("resting"))
		Expect(m.Vars().Get("rested")).To(Equal("true"))
		Expect(world.Mobs()).To(HaveLen(2))

		child := world.Mobs()[1]
		Expect(child.Type.Name).To(Equal("grub"))
		Expect(child.State).To(Equal("eat"))
		Expect(child.Vars().Get("fed")).To(Equal("true"))
	})

	It("reports broken files without losing the good ones", func() {
		writeFile(dir, "broken.yaml", "name: broken\ninitial_state: idle\nstates:\n  idle:\n    on_enter:\n      - fly away\n")

		types, err := loader.LoadDir(context.Background(), dir, nil)
		Expect(err).To(HaveOccurred())
		Expect(content.Describe(err)).To(ContainSubstring("broken.yaml"))
		Expect(types).To(HaveLen(2))
	})

	Context("when watching", func() {
		var (
			watcher *content.Watcher
			reloads chan []*mob.Type
		)

		BeforeEach(func() {
			reloads = make(chan []*mob.Type, 16)
			var err error
			watcher, err = content.NewWatcher(loader, dir, nil, func(types []*mob.Type, _ error) {
				select {
				case reloads <- types:
				default:
				}
			}, content.WithDebounce(20*time.Millisecond))
			Expect(err).NotTo(HaveOccurred())
			watcher.Start(context.Background())
		})

		AfterEach(func() {
			Expect(watcher.Close()).To(Succeed())
		})

		It("picks up edited scripts", func() {
			writeFile(dir, "mother.yaml", mother+"      - set_var edited yes\n")

			var types []*mob.Type
			Eventually(reloads).WithTimeout(5 * time.Second).Should(Receive(&types))
			Expect(types).To(HaveLen(2))

			for _, t := range types {
				world.AddType(t)
			}
			m := world.Spawn(world.Types["mother"], cp.Vector{}, 0)
			m.SetState("resting")
			Expect(m.Vars().Get("edited")).To(Equal("yes"))
		})
	})
})
