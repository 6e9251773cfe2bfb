package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/clauselens/clauselens/backend/go-services/internal/auth"
	"github.com/clauselens/clauselens/backend/go-services/internal/config"
	"github.com/clauselens/clauselens/backend/go-services/internal/contracts"
	"github.com/clauselens/clauselens/backend/go-services/internal/session"
	"github.com/clauselens/clauselens/backend/go-services/internal/workflow"
)

// Drives the client-side core end to end against the in-process mock
// services: resume the stored session (or sign in), summarize, ask one
// question, optionally log out. The credential survives runs via the
// file-backed slot, like a browser profile.
func main() {
	var (
		email    = flag.String("email", "user@example.com", "login email")
		password = flag.String("password", "password123", "login password")
		provider = flag.String("provider", "", "social provider (skips password login)")
		text     = flag.String("text", "", "contract text to summarize")
		file     = flag.String("file", "", "contract file reference (not parsed)")
		question = flag.String("question", "What is the governing law?", "follow-up question")
		logout   = flag.Bool("logout", false, "log out at the end")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	store := session.NewFileStore(cfg.Session.Path)
	authSvc := auth.NewService(cfg, store)
	ctrl := session.NewController(ctx, store, authSvc)

	docs := contracts.NewService(store, cfg.Latency.Contracts)
	wf := workflow.NewController(docs)
	ctrl.OnLogout(wf.Reset)

	if u := ctrl.CurrentUser(); u != nil {
		fmt.Printf("resumed session for %s\n", u.Email)
	} else {
		var res auth.Result
		var err error
		if *provider != "" {
			res, err = ctrl.SocialLogin(ctx, *provider)
		} else {
			res, err = ctrl.Login(ctx, *email, *password)
		}
		if err != nil {
			log.Fatalf("auth fault: %v", err)
		}
		if !res.OK {
			log.Fatalf("auth failed: %s", res.Error)
		}
		fmt.Printf("signed in as %s\n", ctrl.CurrentUser().Email)
	}

	if *file != "" {
		err = wf.SubmitFile(ctx, *file)
	} else {
		if *text == "" {
			*text = "This agreement renews automatically each year unless terminated in writing."
		}
		err = wf.Submit(ctx, *text)
	}
	if err != nil {
		log.Fatalf("submit: %v", err)
	}

	st := wf.State()
	if st.Phase != workflow.PhaseReady {
		fmt.Fprintf(os.Stderr, "analysis failed: %s\n", st.Err)
		os.Exit(1)
	}
	fmt.Println("key terms:       " + strings.Join(st.Summary.KeyTerms, "; "))
	fmt.Println("potential risks: " + strings.Join(st.Summary.PotentialRisks, "; "))
	fmt.Println("obligations:     " + strings.Join(st.Summary.Obligations, "; "))

	if err := wf.AskQuestion(ctx, *question); err != nil {
		log.Fatalf("ask: %v", err)
	}
	st = wf.State()
	if st.QA == workflow.QAAnswered {
		fmt.Printf("Q: %s\nA: %s\n", st.Question, st.Answer)
	} else {
		fmt.Fprintf(os.Stderr, "question failed: %s\n", st.QAErr)
	}

	if *logout {
		if err := ctrl.Logout(ctx); err != nil {
			log.Fatalf("logout: %v", err)
		}
		fmt.Println("logged out")
	}
}
