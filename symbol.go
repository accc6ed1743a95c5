package stockfetch

type Symbol string
